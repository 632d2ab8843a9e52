// Command provision-user stores a bcrypt-hashed credential for a user in the
// kubernetes or redis credential store.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"tokenAuthAPI/internal/k8s"
	"tokenAuthAPI/internal/redisstore"
)

type provisioner interface {
	Provision(ctx context.Context, username, password string) error
}

func main() {
	store := flag.String("store", "kubernetes", "Credential store: kubernetes or redis")
	username := flag.String("user", "", "Username to provision")
	redisAddr := flag.String("redis-addr", "localhost:6379", "Redis address (redis store)")
	redisPrefix := flag.String("redis-prefix", "auth", "Redis key prefix (redis store)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")

	flag.Parse()

	// The password comes from the environment so it does not end up in shell history
	password := os.Getenv("AUTH_PASSWORD")
	if *username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Usage: AUTH_PASSWORD=... provision-user -user <name> [-store kubernetes|redis]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var p provisioner
	switch *store {
	case "kubernetes":
		client, err := k8s.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating Kubernetes client: %v\n", err)
			os.Exit(1)
		}
		p = k8s.NewCredentialStore(client)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer client.Close()
		p = redisstore.NewCredentialStore(client, *redisPrefix)
	default:
		fmt.Fprintf(os.Stderr, "Unknown store %q\n", *store)
		os.Exit(2)
	}

	if err := p.Provision(ctx, *username, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error provisioning %q: %v\n", *username, err)
		os.Exit(1)
	}

	fmt.Printf("Provisioned credentials for %q in %s store\n", *username, *store)
}
