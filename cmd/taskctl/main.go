// ABOUTME: CLI client for the taskd REST API
// ABOUTME: Handles register/login/logout and task listing and mutation with a saved token

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	client := &apiClient{
		baseURL: strings.TrimRight(cfg.Server.URL, "/"),
		token:   readToken(),
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "register":
		err = cmdRegister(client, args)
	case "login":
		err = cmdLogin(client, args)
	case "logout":
		err = cmdLogout(client)
	case "list", "ls":
		err = cmdList(client)
	case "add":
		err = cmdAdd(client, args)
	case "done":
		err = cmdDone(client, args)
	case "rm":
		err = cmdRemove(client, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: taskctl <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register <username>        Create an account (prompts for password)")
	fmt.Println("  login <username>           Log in and save the token")
	fmt.Println("  logout                     Revoke the saved token")
	fmt.Println("  list                       List your tasks")
	fmt.Println("  add <title> [--due DATE]   Add a task (DATE in RFC3339)")
	fmt.Println("  done <id>                  Mark a task completed")
	fmt.Println("  rm <id>                    Delete a task")
	fmt.Println()
	fmt.Println("Server URL comes from TASKD_URL or " + configPath())
}

// apiClient is a thin wrapper over the REST API.
type apiClient struct {
	baseURL string
	token   string
}

type errorResponse struct {
	Error string `json:"error"`
}

type taskJSON struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	DueDate   *string `json:"due_date"`
	Completed bool    `json:"completed"`
	CreatedAt string  `json:"created_at"`
}

// do sends a JSON request and decodes the response into out (unless nil).
// Non-2xx responses are converted into errors carrying the server's message.
func (c *apiClient) do(method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp errorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			if resp.StatusCode == http.StatusUnauthorized {
				return fmt.Errorf("%s (try 'taskctl login')", errResp.Error)
			}
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

func cmdRegister(c *apiClient, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskctl register <username>")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	var resp struct {
		Message string `json:"message"`
		User    struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	body := map[string]string{"username": args[0], "password": password}
	if err := c.do(http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return err
	}

	color.Green("✓ Registered %s", resp.User.Username)
	fmt.Println("Run 'taskctl login " + resp.User.Username + "' to log in.")
	return nil
}

func cmdLogin(c *apiClient, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskctl login <username>")
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	body := map[string]string{"username": args[0], "password": password}
	if err := c.do(http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return err
	}

	if err := saveToken(resp.Token); err != nil {
		return err
	}

	color.Green("✓ Logged in as %s", args[0])
	return nil
}

func cmdLogout(c *apiClient) error {
	if c.token == "" {
		return fmt.Errorf("not logged in")
	}

	if err := c.do(http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}

	if err := os.Remove(tokenPath()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}

	color.Green("✓ Logged out")
	return nil
}

func cmdList(c *apiClient) error {
	var tasks []taskJSON
	if err := c.do(http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tSTATUS\tTITLE\tDUE\tCREATED")
	fmt.Fprintln(w, "  --\t------\t-----\t---\t-------")

	for _, t := range tasks {
		status := " "
		if t.Completed {
			status = color.GreenString("✓")
		}
		due := "-"
		if t.DueDate != nil {
			if parsed, err := time.Parse(time.RFC3339, *t.DueDate); err == nil {
				due = parsed.Format("Jan 02 15:04")
			}
		}
		created := t.CreatedAt
		if parsed, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
			created = parsed.Format("Jan 02 15:04")
		}
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", truncate(t.ID, 8), status, truncate(t.Title, 40), due, created)
	}

	return w.Flush()
}

func cmdAdd(c *apiClient, args []string) error {
	var title, due string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--due":
			if i+1 >= len(args) {
				return fmt.Errorf("--due requires a value")
			}
			due = args[i+1]
			i++
		case strings.HasPrefix(arg, "--due="):
			due = strings.TrimPrefix(arg, "--due=")
		case strings.HasPrefix(arg, "-"):
			return fmt.Errorf("unknown flag: %s", arg)
		default:
			if title != "" {
				title += " "
			}
			title += arg
		}
	}

	if title == "" {
		return fmt.Errorf("usage: taskctl add <title> [--due DATE]")
	}

	body := map[string]any{"title": title}
	if due != "" {
		body["due_date"] = due
	}

	var task taskJSON
	if err := c.do(http.MethodPost, "/api/tasks", body, &task); err != nil {
		return err
	}

	color.Green("✓ Added task %s", truncate(task.ID, 8))
	return nil
}

func cmdDone(c *apiClient, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskctl done <id>")
	}

	id, err := resolveTaskID(c, args[0])
	if err != nil {
		return err
	}

	body := map[string]any{"completed": true}
	var task taskJSON
	if err := c.do(http.MethodPatch, "/api/tasks/"+id, body, &task); err != nil {
		return err
	}

	color.Green("✓ Completed: %s", task.Title)
	return nil
}

func cmdRemove(c *apiClient, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: taskctl rm <id>")
	}

	id, err := resolveTaskID(c, args[0])
	if err != nil {
		return err
	}

	if err := c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil); err != nil {
		return err
	}

	color.Green("✓ Deleted task %s", truncate(id, 8))
	return nil
}

// resolveTaskID expands a unique id prefix (as shown by list) to the full id.
func resolveTaskID(c *apiClient, prefix string) (string, error) {
	var tasks []taskJSON
	if err := c.do(http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return "", err
	}

	var match string
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", fmt.Errorf("ambiguous id prefix %q", prefix)
			}
			match = t.ID
		}
	}

	if match == "" {
		return "", fmt.Errorf("no task with id %q", prefix)
	}
	return match, nil
}

func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(data), nil
}

func readToken() string {
	if token := os.Getenv("TASKD_TOKEN"); token != "" {
		return token
	}

	data, err := os.ReadFile(tokenPath())
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func saveToken(token string) error {
	path := tokenPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
