package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/dkrylov/go-data-vault/internal/client"
	"github.com/dkrylov/go-data-vault/internal/config"
	"github.com/dkrylov/go-data-vault/internal/logger"
	"github.com/dkrylov/go-data-vault/internal/vault"
	"github.com/dkrylov/go-data-vault/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: vault [flags] <command>

commands:
  tui                        interactive browser (default)
  put <key> [value]          store a value (reads stdin when value is omitted)
  get <key>                  decrypt and print a value
  head <key>                 print envelope metadata without decrypting
  del <key>                  delete an entry and its grants
  ls                         list entry keys
  grant <key> <did>          share an entry with a principal
  revoke <key> <did>         revoke a grant and rotate the entry key
  shared <did> <key>         read an entry another principal shared
  grants                     list issued grants
  resolve <did>              look up a principal's published public key
  publish                    re-publish this vault's public key
  whoami                     print this vault's DID and address
`

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("vault-cli")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.Version == "" {
		cfg.Version = buildVersion
	}

	app, err := client.NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	args := flag.Args()
	command := "tui"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	if command == "tui" {
		if err = app.Run(); err != nil {
			log.Fatal().Err(err).Msg("client run error")
		}
		return
	}

	if err = runCommand(app.Vault(), command, args); err != nil {
		fmt.Fprintf(os.Stderr, "vault %s: %v\n", command, err)
		os.Exit(1)
	}
}

// runCommand executes a one-shot command against an unlocked vault, locking
// it again before returning.
func runCommand(v vault.Vault, command string, args []string) error {
	ctx := context.Background()

	if err := v.Unlock(ctx); err != nil {
		return fmt.Errorf("unlock vault: %w", err)
	}
	defer v.Lock()

	switch command {
	case "put":
		return cmdPut(ctx, v, args)
	case "get":
		return cmdGet(ctx, v, args)
	case "head":
		return cmdHead(ctx, v, args)
	case "del":
		return requireArgs(args, 1, func() error { return v.Delete(ctx, args[0]) })
	case "ls":
		return cmdList(ctx, v)
	case "grant":
		return cmdGrant(ctx, v, args)
	case "revoke":
		return cmdRevoke(ctx, v, args)
	case "shared":
		return cmdShared(ctx, v, args)
	case "grants":
		return cmdGrants(ctx, v)
	case "resolve":
		return cmdResolve(ctx, v, args)
	case "publish":
		return v.PublishIdentity(ctx)
	case "whoami":
		principal := v.Principal()
		fmt.Printf("did: %s\naddress: %s\n", principal.DID(), principal.Address)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func requireArgs(args []string, n int, run func() error) error {
	if len(args) != n {
		return errors.New("wrong number of arguments")
	}
	return run()
}

func cmdPut(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 1 && len(args) != 2 {
		return errors.New("usage: put <key> [value]")
	}

	var input []byte
	if len(args) == 2 {
		input = []byte(args[1])
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		input = data
	}

	// Valid JSON keeps its structure; anything else is stored as raw bytes.
	if json.Valid(input) {
		return v.Put(ctx, args[0], json.RawMessage(input))
	}
	return v.Put(ctx, args[0], input)
}

func cmdGet(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: get <key>")
	}

	meta, err := v.Head(ctx, args[0])
	if err != nil {
		return err
	}

	if meta[models.HeaderContentType] == models.ContentTypeBytes {
		var raw []byte
		if err = v.Get(ctx, args[0], &raw); err != nil {
			return err
		}
		_, err = os.Stdout.Write(raw)
		return err
	}

	var value any
	if err = v.Get(ctx, args[0], &value); err != nil {
		return err
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func cmdHead(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: head <key>")
	}

	meta, err := v.Head(ctx, args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(meta))
	for name := range meta {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, meta[name])
	}
	return nil
}

func cmdList(ctx context.Context, v vault.Vault) error {
	keys, err := v.List(ctx)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Println(key)
	}
	return nil
}

func cmdGrant(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: grant <key> <did>")
	}

	recipient, err := models.ParsePrincipal(args[1])
	if err != nil {
		return err
	}
	return v.Grant(ctx, args[0], recipient)
}

func cmdRevoke(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: revoke <key> <did>")
	}

	recipient, err := models.ParsePrincipal(args[1])
	if err != nil {
		return err
	}
	return v.Revoke(ctx, args[0], recipient)
}

func cmdShared(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: shared <did> <key>")
	}

	grantor, err := models.ParsePrincipal(args[0])
	if err != nil {
		return err
	}

	var value any
	if err = v.GetShared(ctx, grantor, args[1], &value); err != nil {
		return err
	}

	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func cmdGrants(ctx context.Context, v vault.Vault) error {
	grants, err := v.ListGrants(ctx)
	if err != nil {
		return err
	}
	for _, grant := range grants {
		fmt.Printf("%s\t%s\n", grant.Recipient.DID(), grant.Key)
	}
	return nil
}

func cmdResolve(ctx context.Context, v vault.Vault, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: resolve <did>")
	}

	principal, err := models.ParsePrincipal(args[0])
	if err != nil {
		return err
	}

	record, err := v.ResolvePublicKey(ctx, principal)
	if err != nil {
		return err
	}

	fmt.Printf("publicKey: %s\nversion: %s\nspace: %s\n",
		base64.StdEncoding.EncodeToString(record.PublicKey), record.Version, record.Space)
	return nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Fprintf(os.Stderr, "Build version: %s\n", buildVersion)
	fmt.Fprintf(os.Stderr, "Build date: %s\n", buildDate)
	fmt.Fprintf(os.Stderr, "Build commit: %s\n", buildCommit)
}
