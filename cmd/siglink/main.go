package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/siglink-dev/siglink-gate/pkg/sdk"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	client, err := sdk.New()
	if err != nil {
		log.Fatalf("Failed to connect to gate: %v", err)
	}

	ctx := context.Background()
	command := strings.ToUpper(os.Args[1])
	args := os.Args[2:]

	switch command {
	case "CALL":
		resp, err := client.CallContract(ctx)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(resp)

	case "AUTH":
		if len(args) < 1 {
			log.Fatal("Usage: siglink AUTH <signature>")
		}
		red, err := client.Authenticate(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(red)

	case "CONSUME":
		if len(args) < 1 {
			log.Fatal("Usage: siglink CONSUME <signature>")
		}
		red, err := client.Consume(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		printJSON(red)

	case "QR":
		if len(args) < 1 {
			log.Fatal("Usage: siglink QR <signature> [outfile]")
		}
		png, err := client.QR(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		out := args[0] + ".png"
		if len(args) > 1 {
			out = args[1]
		}
		if err := os.WriteFile(out, png, 0644); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", out, len(png))

	case "LOG":
		if len(args) < 1 {
			log.Fatal("Usage: siglink LOG <json>")
		}
		var payload any
		if err := json.Unmarshal([]byte(args[0]), &payload); err != nil {
			log.Fatalf("Payload must be valid JSON: %v", err)
		}
		if err := client.LogTransaction(ctx, payload); err != nil {
			log.Fatal(err)
		}
		fmt.Println("OK")

	case "STATS":
		stats, err := client.Stats(ctx)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(stats)

	case "PING":
		if err := client.Ping(ctx); err != nil {
			log.Fatal(err)
		}
		fmt.Println("PONG")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Siglink CLI - Interface for the siglink gate daemon")
	fmt.Println("\nUsage:")
	fmt.Println("  siglink CALL")
	fmt.Println("  siglink AUTH <signature>")
	fmt.Println("  siglink CONSUME <signature>")
	fmt.Println("  siglink QR <signature> [outfile]")
	fmt.Println("  siglink LOG <json>")
	fmt.Println("  siglink STATS")
	fmt.Println("  siglink PING")
	fmt.Println("\nEnvironment Variables:")
	fmt.Println("  SIGLINK_GATE_ADDR     Address of the gate (default: http://localhost:5000)")
	fmt.Println("  SIGLINK_VERIFY_TLS    Set to true to verify the gate's certificate")
}

func printJSON(v any) {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(bytes))
}
