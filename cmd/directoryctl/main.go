package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hongminglow/varadhi-be/internal/client"
	"github.com/hongminglow/varadhi-be/internal/models/dto"
)

const usage = `usage: directoryctl [-api URL] <command> [args]

commands:
  categories                    list service categories
  list [category]               list listings, optionally of one category
  search <term>                 search listings (blank term lists everything)
  register -username U -email E -password P [-mobile M]
  login -username U -password P
`

func main() {
	api := flag.String("api", envOr("VARADHI_API", "http://localhost:3000"), "backend base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c := client.New(*api, nil)
	if err := run(ctx, c, flag.Arg(0), flag.Args()[1:]); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintf(os.Stderr, "error: %s (status %d)\n", apiErr.Message, apiErr.Status)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, c *client.Client, cmd string, args []string) error {
	switch cmd {
	case "categories":
		categories, err := c.Categories(ctx)
		if err != nil {
			return err
		}
		fmt.Println(client.AllServices)
		for _, name := range categories {
			fmt.Println(name)
		}
		return nil

	case "list":
		listings, err := c.Browse(ctx, strings.Join(args, " "), "")
		if err != nil {
			return err
		}
		return client.WriteCards(os.Stdout, listings)

	case "search":
		term := strings.Join(args, " ")
		category := ""
		if strings.TrimSpace(term) == "" {
			category = client.AllServices
		}
		listings, err := c.Browse(ctx, category, term)
		if err != nil {
			return err
		}
		return client.WriteCards(os.Stdout, listings)

	case "register":
		fs := flag.NewFlagSet("register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		mobile := fs.String("mobile", "", "mobile number (optional)")
		_ = fs.Parse(args)
		resp, err := c.Register(ctx, dto.RegisterRequest{
			Username:     *username,
			Email:        *email,
			Password:     *password,
			MobileNumber: mobile,
		})
		if err != nil {
			return err
		}
		fmt.Println(resp.Message)
		return nil

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		username := fs.String("username", "", "username")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)
		resp, err := c.Login(ctx, *username, *password)
		if err != nil {
			return err
		}
		fmt.Printf("%s (user %s, id %d)\n", resp.Message, resp.Username, resp.UserID)
		return nil
	}

	return fmt.Errorf("unknown command %q", cmd)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
