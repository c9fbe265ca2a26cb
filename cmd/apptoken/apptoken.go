package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/akamensky/argparse"
	"github.com/bmharper/kapptokens/pkg/kaltura"
	"github.com/bmharper/kapptokens/pkg/privileges"
	"github.com/cyclopcam/logs"
	"golang.org/x/term"
)

// Some Kaltura deployments sit behind a WAF that rejects non-browser agents,
// so we present ourselves as a desktop browser.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

func check(err error) {
	if err != nil {
		panic(err)
	}
}

// tokenToolOptions is the parsed command line of the tool.
type tokenToolOptions struct {
	privileges   map[string]string // privilege name -> supplied value
	description  string
	updateID     string
	deleteID     string
	list         bool
	startSession bool
}

func main() {
	parser := argparse.NewParser("apptoken", "Manage Kaltura app tokens with dynamic privileges")
	edit := parser.String("", "edit", &argparse.Options{Help: "Set the edit privilege. Expects entry id or * for wildcard"})
	sview := parser.String("", "sview", &argparse.Options{Help: "Set the sview privilege. Expects entry id or * for wildcard"})
	download := parser.String("", "download", &argparse.Options{Help: "Set the download privilege. Expects entry id or * for wildcard"})
	downloadasset := parser.String("", "downloadasset", &argparse.Options{Help: "Set the downloadasset privilege. Expects asset id or *"})
	editplaylist := parser.String("", "editplaylist", &argparse.Options{Help: "Set the editplaylist privilege. Expects the id of the playlist"})
	sviewplaylist := parser.String("", "sviewplaylist", &argparse.Options{Help: "Set the sviewplaylist privilege. Expects the id of the playlist"})
	edituser := parser.String("", "edituser", &argparse.Options{Help: "Set the edituser privilege. * or a list of usernames separated by /"})
	actionslimit := parser.String("", "actionslimit", &argparse.Options{Help: "Set the actionslimit privilege. Expects an integer"})
	setrole := parser.String("", "setrole", &argparse.Options{Help: "Set the setrole privilege. Expects the id of the role"})
	iprestrict := parser.String("", "iprestrict", &argparse.Options{Help: "Set the iprestrict privilege. Only a single address is allowed"})
	urirestrict := parser.String("", "urirestrict", &argparse.Options{Help: "Set the urirestrict privilege. A URI, * as a prefix allowed"})
	enableentitlement := parser.String("", "enableentitlement", &argparse.Options{Help: "Force entitlement checks"})
	disableentitlement := parser.String("", "disableentitlement", &argparse.Options{Help: "Bypass entitlement checks"})
	disableentitlementforentry := parser.String("", "disableentitlementforentry", &argparse.Options{Help: "Bypass entitlement for a given entry id"})
	privacycontext := parser.String("", "privacycontext", &argparse.Options{Help: "Set the privacy context for entitlement checks"})
	enablecategorymoderation := parser.String("", "enablecategorymoderation", &argparse.Options{Help: "Enable category moderation"})
	reftime := parser.String("", "reftime", &argparse.Options{Help: "Set the reftime privilege. Expects a Unix timestamp"})
	preview := parser.String("", "preview", &argparse.Options{Help: "Set the preview privilege. Size in bytes"})
	sessionid := parser.String("", "sessionid", &argparse.Options{Help: "Set the sessionid. An arbitrary string identifying the session"})
	listTokens := parser.Flag("", "list", &argparse.Options{Help: "Enable listing of all entries"})
	description := parser.String("", "description", &argparse.Options{Help: "Description for the app token"})
	updateID := parser.String("", "update", &argparse.Options{Help: "Update an existing app token by ID"})
	startSession := parser.Flag("", "start_session", &argparse.Options{Help: "Start a session with the app token after creation or update"})
	deleteID := parser.String("", "delete", &argparse.Options{Help: "Delete an app token by ID"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}
	if len(os.Args) == 1 {
		fmt.Fprint(os.Stderr, parser.Usage(nil))
		os.Exit(1)
	}

	logger, err := logs.NewLog()
	check(err)

	// An empty string means the flag was not supplied. Only supplied
	// privileges contribute to the privilege string.
	supplied := map[string]string{}
	set := func(name string, value *string) {
		if *value != "" {
			supplied[name] = *value
		}
	}
	set("edit", edit)
	set("sview", sview)
	set("download", download)
	set("downloadasset", downloadasset)
	set("editplaylist", editplaylist)
	set("sviewplaylist", sviewplaylist)
	set("edituser", edituser)
	set("actionslimit", actionslimit)
	set("setrole", setrole)
	set("iprestrict", iprestrict)
	set("urirestrict", urirestrict)
	set("enableentitlement", enableentitlement)
	set("disableentitlement", disableentitlement)
	set("disableentitlementforentry", disableentitlementforentry)
	set("privacycontext", privacycontext)
	set("enablecategorymoderation", enablecategorymoderation)
	set("reftime", reftime)
	set("preview", preview)
	set("sessionid", sessionid)
	if *listTokens {
		supplied["list"] = "*"
	}
	for _, name := range []string{"actionslimit", "reftime", "preview"} {
		if v, ok := supplied[name]; ok {
			if _, err := strconv.Atoi(v); err != nil {
				fmt.Fprintf(os.Stderr, "--%v expects an integer, got %v\n", name, v)
				os.Exit(1)
			}
		}
	}

	opts := &tokenToolOptions{
		privileges:   supplied,
		description:  *description,
		updateID:     *updateID,
		deleteID:     *deleteID,
		list:         *listTokens,
		startSession: *startSession,
	}

	cfg, err := kaltura.LoadConfig(kaltura.DefaultConfigFile)
	check(err)
	client := kaltura.NewClient(logger, cfg.ServiceURL, cfg.PartnerID)
	client.UserAgent = userAgent

	ks, err := client.StartSession(cfg.AdminSecret, cfg.UserID, kaltura.SessionTypeAdmin, cfg.Expiry, cfg.AdminPrivileges)
	check(err)
	fmt.Printf("KS: %v\n", ks)

	runTokenTool(client, opts, terminalWidth())
}

// runTokenTool dispatches to delete, list, or create-or-update.
func runTokenTool(client *kaltura.Client, opts *tokenToolOptions, termWidth int) {
	if opts.deleteID != "" {
		deleteAppToken(client, opts.deleteID)
	} else if opts.list {
		listAppTokens(client, termWidth)
	} else {
		manageAppToken(client, opts)
	}
}

func deleteAppToken(client *kaltura.Client, id string) {
	if err := client.DeleteAppToken(id); err != nil {
		fmt.Printf("Error deleting app token with ID %v: %v\n", id, err)
		return
	}
	fmt.Printf("App token with ID %v has been deleted.\n", id)
}

func listAppTokens(client *kaltura.Client, termWidth int) {
	tokens, err := client.ListAllAppTokens()
	if err != nil {
		fmt.Printf("Failed to list app tokens: %v\n", err)
		return
	}
	if len(tokens) == 0 {
		fmt.Printf("No app tokens found.\n")
		return
	}
	fmt.Print(renderTokenTable(tokens, termWidth))
}

// manageAppToken is the create-or-update path, with an optional derived
// session at the end. A failed create/update leaves us without a token id and
// value, so the session step is skipped.
func manageAppToken(client *kaltura.Client, opts *tokenToolOptions) {
	privs := privileges.Build(opts.privileges)
	var token *kaltura.AppToken
	if opts.updateID != "" {
		token = updateAppToken(client, opts.updateID, privs, opts.description)
	} else {
		token = createAppToken(client, privs, opts.description)
	}
	if opts.startSession && token != nil && token.ID != "" && token.Token != "" {
		sessionOpts := &kaltura.TokenSessionOptions{
			SessionType: kaltura.SessionTypeUser,
			PartnerID:   client.PartnerID,
		}
		ks, err := client.StartTokenSession(token.ID, token.Token, sessionOpts)
		check(err)
		fmt.Printf("App token session KS: %v\n", ks)
	}
}

func createAppToken(client *kaltura.Client, privs, description string) *kaltura.AppToken {
	token := &kaltura.AppToken{
		Description:       description,
		SessionPrivileges: privs,
		SessionType:       kaltura.SessionTypeUser,
		HashType:          kaltura.HashTypeSHA256,
	}
	created, err := client.AddAppToken(token)
	if err != nil {
		fmt.Printf("Error creating new app token: %v\n", err)
		return nil
	}
	fmt.Printf("Created new app token ID: %v\n", created.ID)
	fmt.Printf("App token description: %v\n", created.Description)
	fmt.Printf("App token session privileges: %v\n", created.SessionPrivileges)
	return created
}

func updateAppToken(client *kaltura.Client, id, privs, description string) *kaltura.AppToken {
	token, err := client.GetAppToken(id)
	if err != nil {
		fmt.Printf("Error updating app token with ID %v: %v\n", id, err)
		return nil
	}
	if privs != "" {
		token.SessionPrivileges = privs
	}
	if description != "" {
		token.Description = description
	}
	updated, err := client.UpdateAppToken(id, token)
	if err != nil {
		fmt.Printf("Error updating app token with ID %v: %v\n", id, err)
		return nil
	}
	fmt.Printf("Updated app token ID: %v\n", updated.ID)
	fmt.Printf("Updated app token description: %v\n", updated.Description)
	fmt.Printf("Updated app token session privileges: %v\n", updated.SessionPrivileges)
	return updated
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

// Fixed column widths of the token table. The privileges column takes
// whatever width remains.
const (
	idColumnWidth          = 15
	valueColumnWidth       = 32
	descriptionColumnWidth = 20
)

// renderTokenTable renders the tokens as a fixed-width table sized to the
// terminal, wrapping long privilege strings onto continuation lines.
func renderTokenTable(tokens []kaltura.AppToken, termWidth int) string {
	privWidth := termWidth - idColumnWidth - valueColumnWidth - descriptionColumnWidth - 9
	if privWidth < 16 {
		privWidth = 16
	}
	rowFormat := fmt.Sprintf("%%-%dv | %%-%dv | %%-%dv | %%v\n", idColumnWidth, valueColumnWidth, descriptionColumnWidth)
	continuationIndent := strings.Repeat(" ", idColumnWidth+valueColumnWidth+descriptionColumnWidth+6)

	b := strings.Builder{}
	fmt.Fprintf(&b, rowFormat, "App Token ID", "Value", "Description", "Session Privileges")
	b.WriteString(strings.Repeat("-", termWidth-1))
	b.WriteString("\n")
	for _, token := range tokens {
		wrapped := wrapText(token.SessionPrivileges, privWidth)
		first := ""
		if len(wrapped) != 0 {
			first = wrapped[0]
		}
		fmt.Fprintf(&b, rowFormat, token.ID, token.Token, token.Description, first)
		if len(wrapped) > 1 {
			for _, line := range wrapped[1:] {
				fmt.Fprintf(&b, "%v| %v\n", continuationIndent, line)
			}
		}
	}
	return b.String()
}

// wrapText splits text into chunks of exactly width characters.
func wrapText(text string, width int) []string {
	lines := []string{}
	for len(text) > width {
		lines = append(lines, text[:width])
		text = text[width:]
	}
	if text != "" {
		lines = append(lines, text)
	}
	return lines
}
