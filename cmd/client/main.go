// Command client is a small interactive tool for exercising the user
// service API: register, login, whoami, logout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/devops25/userauth/internal/client"
)

func main() {
	addr := flag.String("a", "http://localhost:8080", "server base URL")
	username := flag.String("u", "", "username")
	university := flag.String("p", "", "university (optional, register only)")
	tokenFlag := flag.String("t", "", "bearer token (whoami/logout)")
	flag.Parse()

	cmd := flag.Arg(0)
	if cmd == "" {
		usage()
		os.Exit(2)
	}

	c := client.New(*addr)
	ctx := context.Background()

	var err error
	switch cmd {
	case "register":
		err = runRegister(ctx, c, *username, *university)
	case "login":
		err = runLogin(ctx, c, *username)
	case "whoami":
		c.SetToken(*tokenFlag)
		var who string
		if who, err = c.Whoami(ctx); err == nil {
			fmt.Println(who)
		}
	case "logout":
		c.SetToken(*tokenFlag)
		if err = c.Logout(ctx); err == nil {
			fmt.Println("Logout successful")
		}
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runRegister(ctx context.Context, c *client.Client, username, university string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	msg, err := c.Register(ctx, username, password, university)
	if err != nil {
		return err
	}

	fmt.Println(msg)
	return nil
}

func runLogin(ctx context.Context, c *client.Client, username string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	if err := c.Login(ctx, username, password); err != nil {
		return err
	}

	// The token is the session credential; print it so follow-up whoami and
	// logout calls can pass it via -t.
	fmt.Println(c.Token())
	return nil
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: client [-a url] [-u username] [-p university] [-t token] <command>

commands:
  register   create an account (prompts for password)
  login      authenticate and print the bearer token
  whoami     print the username for a token (-t)
  logout     revoke a token (-t)`)
}
