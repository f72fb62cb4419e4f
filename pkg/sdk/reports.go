package sdk

import (
	"context"

	"google.golang.org/grpc"

	"github.com/celerix-dev/celerix-commerce/pkg/schema"
)

const (
	ReportServiceName = "celerix.report.v1.ReportService"

	reportUserOrdersMethod = "/" + ReportServiceName + "/GetUserOrdersReport"
	reportTopUsersMethod   = "/" + ReportServiceName + "/GetTopUsersByOrders"
)

// ReportServer is the server API for the aggregation service.
type ReportServer interface {
	GetUserOrdersReport(context.Context, *schema.UserOrdersReportRequest) (*schema.UserOrdersReport, error)
	GetTopUsersByOrders(context.Context, *schema.TopUsersByOrdersRequest) (*schema.TopUsersReport, error)
}

// ReportServiceDesc describes the aggregation service for grpc registration.
var ReportServiceDesc = grpc.ServiceDesc{
	ServiceName: ReportServiceName,
	HandlerType: (*ReportServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetUserOrdersReport",
			Handler: unaryHandler(reportUserOrdersMethod, func(s ReportServer, ctx context.Context, in *schema.UserOrdersReportRequest) (any, error) {
				return s.GetUserOrdersReport(ctx, in)
			}),
		},
		{
			MethodName: "GetTopUsersByOrders",
			Handler: unaryHandler(reportTopUsersMethod, func(s ReportServer, ctx context.Context, in *schema.TopUsersByOrdersRequest) (any, error) {
				return s.GetTopUsersByOrders(ctx, in)
			}),
		},
	},
	Metadata: "celerix/report/v1/report.proto",
}

// RegisterReportServer attaches srv to s.
func RegisterReportServer(s grpc.ServiceRegistrar, srv ReportServer) {
	s.RegisterService(&ReportServiceDesc, srv)
}

// ReportClient is a remote client for the aggregation service.
type ReportClient struct {
	cc       grpc.ClientConnInterface
	timeouts Timeouts
}

func NewReportClient(cc grpc.ClientConnInterface, t Timeouts) *ReportClient {
	return &ReportClient{cc: cc, timeouts: t}
}

func (c *ReportClient) GetUserOrdersReport(ctx context.Context, userID string) (schema.UserOrdersReport, error) {
	var out schema.UserOrdersReport
	err := invoke(ctx, c.cc, c.timeouts.Report, reportUserOrdersMethod, &schema.UserOrdersReportRequest{UserID: userID}, &out)
	return out, err
}

func (c *ReportClient) GetTopUsersByOrders(ctx context.Context, topN int) (schema.TopUsersReport, error) {
	var out schema.TopUsersReport
	err := invoke(ctx, c.cc, c.timeouts.Report, reportTopUsersMethod, &schema.TopUsersByOrdersRequest{TopN: topN}, &out)
	return out, err
}
