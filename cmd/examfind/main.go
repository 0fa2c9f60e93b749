// Command examfind looks up a class in an exam dataset without the TUI and
// prints what the interactive search would show.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"examfinder/internal/agenda"
	"examfinder/internal/config"
	"examfinder/internal/dataset"
	"examfinder/internal/domain"
	"examfinder/internal/location"
	"examfinder/internal/logging"
	"examfinder/internal/reminder"
	"examfinder/internal/search"
	"examfinder/internal/session"
)

// lookup is the JSON output
type lookup struct {
	Query     string              `json:"query"`
	Mode      search.Mode         `json:"mode"`
	Classes   []string            `json:"classes"`
	Exams     []domain.ExamRecord `json:"exams"`
	Selected  []string            `json:"selected"`
	Reminders []int               `json:"reminders"`
	Link      string              `json:"link"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("examfind", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		dataSource string
		format     string
		baseURL    string
		reminders  string
		logLevel   string
		timeout    time.Duration
	)
	defaults := config.DefaultConfig()
	fs.StringVar(&dataSource, "data", defaults.DataSource, "Exam dataset: JSON file, http(s) URL or SQLite database")
	fs.StringVar(&format, "format", "text", "Output format (text or json)")
	fs.StringVar(&baseURL, "base-url", defaults.BaseURL, "Base of the printed link")
	fs.StringVar(&reminders, "reminders", "", "Reminder offsets, e.g. \"30, 1h\"")
	fs.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fs.DurationVar(&timeout, "timeout", 30*time.Second, "Give up loading the dataset after this long")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: examfind -data <source> [-format text|json] <query or ?class=...>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if format != "text" && format != "json" {
		fmt.Fprintf(stderr, "unknown format %q\n", format)
		return 2
	}

	logger := logging.NewConsole(stderr, logLevel, true)

	offsets := defaults.Reminders
	if reminders != "" {
		parsed, err := parseReminders(reminders)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		offsets = parsed
	}

	arg := strings.Join(fs.Args(), " ")
	link, text := "", arg
	if isLink(arg) {
		link, text = arg, ""
	}

	start, err := location.Parse(link, baseURL)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	provider, err := dataset.NewProvider(dataSource)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ds, err := provider.Load(loadCtx)
	if err != nil {
		logger.Error().Err(err).Str("source", provider.Source()).Msg("dataset load failed")
		fmt.Fprintln(stderr, err)
		return 1
	}
	logger.Debug().Int("exams", len(ds.Exams)).Str("source", provider.Source()).Msg("dataset loaded")

	s := session.New(location.NewMemory(start), offsets, session.WithLogger(logger))
	s.SetDataset(ds)
	if link == "" {
		s.Input(text)
	}

	if format == "json" {
		err = writeJSON(stdout, s)
	} else {
		err = writeText(stdout, s)
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

// isLink reports whether arg is a deep link rather than search text
func isLink(arg string) bool {
	return strings.HasPrefix(arg, "?") || strings.Contains(arg, "://")
}

func parseReminders(text string) ([]int, error) {
	offsets, err := reminder.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid -reminders: %w", err)
	}
	return offsets, nil
}

func writeJSON(w io.Writer, s *session.Session) error {
	result := s.Result()
	out := lookup{
		Query:     s.Text(),
		Mode:      result.Mode,
		Classes:   result.Classes,
		Exams:     result.Exams,
		Selected:  s.Selected().IDs(),
		Reminders: s.Reminders(),
		Link:      s.Link(),
	}
	if out.Selected == nil {
		out.Selected = []string{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}

func writeText(w io.Writer, s *session.Session) error {
	result := s.Result()
	var b strings.Builder

	switch result.Mode {
	case search.ModeEmpty:
		b.WriteString("Type part of a class name to search.\n")
	case search.ModeNotFound:
		fmt.Fprintf(&b, "No class matches %q.\n", s.Text())
	case search.ModeList:
		fmt.Fprintf(&b, "%d classes match %q:\n", len(result.Classes), s.Text())
		for _, class := range result.Classes {
			fmt.Fprintf(&b, "  %s\n", class)
		}
	case search.ModeDetail:
		entries := agenda.Build(s.SelectedExams(), s.Reminders(), time.Local)
		b.WriteString(agenda.Render(result.Class(), entries))
	}
	fmt.Fprintf(&b, "\n%s\n", s.Link())

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
