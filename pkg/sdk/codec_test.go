package sdk

import (
	"testing"
	"time"

	"google.golang.org/grpc/encoding"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

func TestCodecRegistered(t *testing.T) {
	if encoding.GetCodec(CodecName) == nil {
		t.Fatalf("codec %q not registered", CodecName)
	}
}

func TestCodec_SchemaMessages(t *testing.T) {
	c := jsonCodec{}
	in := schema.Order{
		ID:               "o1",
		UserID:           "u1",
		UserNameSnapshot: "Alice",
		Items:            []string{"book", "pen"},
		Total:            12.5,
		CreatedAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	b, err := c.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out schema.Order
	if err := c.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.ID != in.ID || out.UserNameSnapshot != "Alice" || len(out.Items) != 2 || !out.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("got %+v", out)
	}

	var empty schema.ListUsersRequest
	if err := c.Unmarshal(nil, &empty); err != nil {
		t.Errorf("empty payload: %v", err)
	}
	if err := c.Unmarshal([]byte("{"), &out); err == nil {
		t.Error("expected error on truncated payload")
	}
}

func TestCodec_ProtoMessages(t *testing.T) {
	c := jsonCodec{}
	b, err := c.Marshal(&healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out healthpb.HealthCheckResponse
	if err := c.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		t.Errorf("status = %v", out.GetStatus())
	}
}
