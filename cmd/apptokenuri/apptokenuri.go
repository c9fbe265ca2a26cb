package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/bmharper/kapptokens/pkg/kaltura"
	"github.com/bmharper/kapptokens/pkg/privileges"
	"github.com/cyclopcam/logs"
)

// Some Kaltura deployments sit behind a WAF that rejects non-browser agents,
// so we present ourselves as a desktop browser.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// uriToolOptions is the parsed command line of the tool.
type uriToolOptions struct {
	list        bool
	actions     []string // lowercased "service.action" names
	updateID    string
	appendURIs  bool
	description string
}

func main() {
	parser := argparse.NewParser("apptokenuri", "Manage Kaltura app tokens restricted to specific API actions")
	listTokens := parser.Flag("l", "list", &argparse.Options{Help: "List all existing app tokens"})
	actions := parser.String("", "actions", &argparse.Options{Help: "A comma-separated list of allowed actions for the app token. Use the format \"service.action\" for each action. Wildcards can be used, eg \"media.*\""})
	updateID := parser.String("u", "update", &argparse.Options{Help: "Specify the ID of an existing app token to update. If this option is not provided, a new app token will be created"})
	appendURIs := parser.Flag("a", "append", &argparse.Options{Help: "Append the new actions to the existing urirestrict privileges of the app token specified by --update"})
	description := parser.String("d", "description", &argparse.Options{Help: "A description for the app token. Set on new app tokens, and updates existing ones if --update is used"})
	debug := parser.Flag("", "debug", &argparse.Options{Help: "Enable debug printing"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	opts := &uriToolOptions{
		list:        *listTokens,
		updateID:    *updateID,
		appendURIs:  *appendURIs,
		description: *description,
	}
	// --actions is mandatory on a create or update invocation. Catch that
	// before we touch the network.
	if (opts.updateID != "" || !opts.list) && *actions == "" {
		fmt.Printf("The --actions argument is mandatory when adding or updating an app token.\n")
		return
	}
	if *actions != "" {
		opts.actions = strings.Split(strings.ToLower(*actions), ",")
	}

	logger, err := logs.NewLog()
	check(err)

	cfg, err := kaltura.LoadConfig(kaltura.DefaultConfigFile)
	check(err)
	client := kaltura.NewClient(logger, cfg.ServiceURL, cfg.PartnerID)
	client.UserAgent = userAgent
	client.SetDebug(*debug)

	_, err = client.StartSession(cfg.AdminSecret, cfg.UserID, kaltura.SessionTypeAdmin, cfg.Expiry, cfg.AdminPrivileges)
	check(err)

	runURITool(client, opts)
}

func runURITool(client *kaltura.Client, opts *uriToolOptions) {
	if opts.list {
		listAppTokens(client)
		return
	}

	prefix := ""
	var token *kaltura.AppToken
	if opts.updateID != "" {
		token = updateAppToken(client, opts)
		prefix = fmt.Sprintf("Updated app token (%v) ", opts.updateID)
	} else {
		token = createAppToken(client, opts)
		if token != nil {
			prefix = fmt.Sprintf("New app token ID (%v) ", token.ID)
		}
	}
	if token == nil {
		return
	}
	fmt.Printf("%vValue: %v\n", prefix, token.Token)
	fmt.Printf("%vPrivileges: %v\n", prefix, token.SessionPrivileges)

	// Generate a sample KS from this app token. We use the minimal
	// (id, hash) call shape here for compatibility with older API revisions.
	ks, err := client.StartTokenSession(token.ID, token.Token, nil)
	check(err)
	fmt.Printf("Gen KS from this app token: %v\n", ks)
}

func listAppTokens(client *kaltura.Client) {
	tokens, err := client.ListAllAppTokens()
	if err != nil {
		fmt.Printf("Failed to list app tokens: %v\n", err)
		return
	}
	for _, token := range tokens {
		fmt.Printf("App token ID: %v\n", token.ID)
		fmt.Printf("App token value: %v\n", token.Token)
		fmt.Printf("App token description: %v\n", token.Description)
		fmt.Printf("------\n")
	}
}

func createAppToken(client *kaltura.Client, opts *uriToolOptions) *kaltura.AppToken {
	token := &kaltura.AppToken{
		SessionType:       kaltura.SessionTypeUser,
		SessionPrivileges: privileges.BuildURIRestrict(opts.actions),
		HashType:          kaltura.HashTypeSHA256,
		Description:       opts.description,
	}
	created, err := client.AddAppToken(token)
	if err != nil {
		fmt.Printf("Error creating new app token: %v\n", err)
		return nil
	}
	return created
}

func updateAppToken(client *kaltura.Client, opts *uriToolOptions) *kaltura.AppToken {
	existing, err := client.GetAppToken(opts.updateID)
	if err != nil {
		var apiErr *kaltura.APIError
		if errors.As(err, &apiErr) && apiErr.Code == "APP_TOKEN_ID_NOT_FOUND" {
			fmt.Printf("App token ID %v not found. Please use a valid ID.\n", opts.updateID)
			return nil
		}
		check(err)
	}
	if opts.appendURIs {
		existing.SessionPrivileges = privileges.MergeURIRestrict(existing.SessionPrivileges, opts.actions)
	} else {
		existing.SessionPrivileges = privileges.BuildURIRestrict(opts.actions)
	}
	if opts.description != "" {
		existing.Description = opts.description
	}
	updated, err := client.UpdateAppToken(opts.updateID, existing)
	if err != nil {
		fmt.Printf("Error updating app token with ID %v: %v\n", opts.updateID, err)
		return nil
	}
	return updated
}
