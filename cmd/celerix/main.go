package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"google.golang.org/grpc"

	"github.com/celerix-dev/celerix-commerce/pkg/sdk"
)

type clients struct {
	timeouts sdk.Timeouts
	gate     sdk.Gate
	conns    []*grpc.ClientConn
}

func (c *clients) connect(ctx context.Context, envKey, fallback, service string) *grpc.ClientConn {
	addr := os.Getenv(envKey)
	if addr == "" {
		addr = fallback
	}
	cc, err := sdk.DialReady(ctx, addr, service, c.gate)
	if err != nil {
		log.Fatalf("Failed to connect to %s at %s: %v", service, addr, err)
	}
	c.conns = append(c.conns, cc)
	return cc
}

func (c *clients) users(ctx context.Context) *sdk.UserClient {
	return sdk.NewUserClient(c.connect(ctx, "USERSVC_ADDR", "localhost:50051", sdk.UserServiceName), c.timeouts)
}

func (c *clients) orders(ctx context.Context) *sdk.OrderClient {
	return sdk.NewOrderClient(c.connect(ctx, "ORDERSVC_ADDR", "localhost:50052", sdk.OrderServiceName), c.timeouts)
}

func (c *clients) reports(ctx context.Context) *sdk.ReportClient {
	return sdk.NewReportClient(c.connect(ctx, "REPORTSVC_ADDR", "localhost:50053", sdk.ReportServiceName), c.timeouts)
}

func (c *clients) close() {
	for _, cc := range c.conns {
		cc.Close()
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	ctx := context.Background()
	c := &clients{timeouts: sdk.DefaultTimeouts(), gate: sdk.DefaultGate()}
	defer c.close()

	command := strings.ToUpper(os.Args[1])
	args := os.Args[2:]

	switch command {
	case "DEMO":
		runDemo(ctx, c)

	case "CREATE_USER":
		if len(args) < 2 {
			log.Fatal("Usage: celerix CREATE_USER <name> <email>")
		}
		u, err := c.users(ctx).CreateUser(ctx, args[0], args[1])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(u)

	case "GET_USER":
		if len(args) < 1 {
			log.Fatal("Usage: celerix GET_USER <userID>")
		}
		u, err := c.users(ctx).GetUser(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(u)

	case "LIST_USERS":
		list, err := c.users(ctx).ListUsers(ctx)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(list)

	case "UPDATE_USER":
		if len(args) < 2 {
			log.Fatal("Usage: celerix UPDATE_USER <userID> <name|-> [email]")
		}
		name := args[1]
		if name == "-" {
			name = ""
		}
		email := ""
		if len(args) > 2 {
			email = args[2]
		}
		u, err := c.users(ctx).UpdateUser(ctx, args[0], name, email)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(u)

	case "DELETE_USER":
		if len(args) < 1 {
			log.Fatal("Usage: celerix DELETE_USER <userID>")
		}
		if err := c.users(ctx).DeleteUser(ctx, args[0]); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OK")

	case "CREATE_ORDER":
		if len(args) < 3 {
			log.Fatal("Usage: celerix CREATE_ORDER <userID> <total> <item>...")
		}
		total, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			log.Fatalf("invalid total %q: %v", args[1], err)
		}
		o, err := c.orders(ctx).CreateOrder(ctx, args[0], args[2:], total)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(o)

	case "GET_ORDER":
		if len(args) < 1 {
			log.Fatal("Usage: celerix GET_ORDER <orderID>")
		}
		o, err := c.orders(ctx).GetOrder(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(o)

	case "LIST_ORDERS":
		userID := ""
		if len(args) > 0 {
			userID = args[0]
		}
		list, err := c.orders(ctx).ListOrders(ctx, userID)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(list)

	case "REPORT":
		if len(args) < 1 {
			log.Fatal("Usage: celerix REPORT <userID>")
		}
		r, err := c.reports(ctx).GetUserOrdersReport(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(r)

	case "TOP":
		n := 0
		if len(args) > 0 {
			var err error
			if n, err = strconv.Atoi(args[0]); err != nil {
				log.Fatalf("invalid count %q: %v", args[0], err)
			}
		}
		r, err := c.reports(ctx).GetTopUsersByOrders(ctx, n)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(r)

	case "PING":
		c.users(ctx)
		c.orders(ctx)
		c.reports(ctx)
		fmt.Println("PONG")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

// runDemo walks the three services through a small scenario.
func runDemo(ctx context.Context, c *clients) {
	users := c.users(ctx)
	orders := c.orders(ctx)
	reports := c.reports(ctx)

	alice, err := users.CreateUser(ctx, "Alice", "alice@example.com")
	if err != nil {
		log.Fatal(err)
	}
	bob, err := users.CreateUser(ctx, "Bob", "bob@example.com")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Created users:")
	printJSON([]any{alice, bob})

	for _, o := range []struct {
		user  string
		items []string
		total float64
	}{
		{alice.ID, []string{"keyboard"}, 50},
		{alice.ID, []string{"mouse", "mousepad"}, 25},
		{bob.ID, []string{"monitor"}, 80},
	} {
		created, err := orders.CreateOrder(ctx, o.user, o.items, o.total)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Created order %s for %s (%.2f)\n", created.ID, created.UserNameSnapshot, created.Total)
	}

	report, err := reports.GetUserOrdersReport(ctx, alice.ID)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("\nReport for Alice:")
	printJSON(report)

	top, err := reports.GetTopUsersByOrders(ctx, 5)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("\nTop users by orders:")
	printJSON(top)
}

func printUsage() {
	fmt.Println("Celerix CLI - Interface for the celerix commerce services")
	fmt.Println("\nUsage:")
	fmt.Println("  celerix DEMO")
	fmt.Println("  celerix CREATE_USER <name> <email>")
	fmt.Println("  celerix GET_USER <userID>")
	fmt.Println("  celerix LIST_USERS")
	fmt.Println("  celerix UPDATE_USER <userID> <name|-> [email]")
	fmt.Println("  celerix DELETE_USER <userID>")
	fmt.Println("  celerix CREATE_ORDER <userID> <total> <item>...")
	fmt.Println("  celerix GET_ORDER <orderID>")
	fmt.Println("  celerix LIST_ORDERS [userID]")
	fmt.Println("  celerix REPORT <userID>")
	fmt.Println("  celerix TOP [n]")
	fmt.Println("  celerix PING")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  USERSVC_ADDR     Address of the user service (default: localhost:50051)")
	fmt.Println("  ORDERSVC_ADDR    Address of the order service (default: localhost:50052)")
	fmt.Println("  REPORTSVC_ADDR   Address of the report service (default: localhost:50053)")
}

func printJSON(v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(bytes))
}
