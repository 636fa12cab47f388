// Package main is tripctl, a command line client for the Trip Journal API.
// It drives the journal SDK: credentials live in a file under the user's
// config directory, so a login survives across invocations.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tripjournal/tripjournal-go/domain"
	"github.com/tripjournal/tripjournal-go/journal"
)

const defaultBaseURL = "http://localhost:8080"

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	client, err := newClient()
	if err != nil {
		fatal(err)
	}

	if err := dispatch(ctx, client, os.Args[1], os.Args[2:]); err != nil {
		fatal(err)
	}
}

func dispatch(ctx context.Context, client *journal.Client, command string, args []string) error {
	switch command {
	case "register":
		return runRegister(ctx, client, args)
	case "login":
		return runLogin(ctx, client, args)
	case "logout":
		client.Logout()
		fmt.Println("logged out")
		return nil
	case "trips":
		return runTrips(ctx, client, args)
	case "events":
		return runEvents(ctx, client, args)
	case "media":
		return runMedia(ctx, client, args)
	case "export":
		return runExport(ctx, client, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// newClient builds the SDK client from the environment. The credential file
// is shared with every other tripctl invocation on this machine.
func newClient() (*journal.Client, error) {
	baseURL := os.Getenv("TRIPJOURNAL_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	path, err := journal.DefaultCredentialPath()
	if err != nil {
		return nil, fmt.Errorf("resolve credential path: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	return journal.New(baseURL,
		journal.WithCredentialStore(journal.NewFileStore(path)),
		journal.WithLogger(logger),
		journal.WithFeedback(journal.LogFeedback{Logger: logger}),
	)
}

func logLevel() slog.Level {
	if os.Getenv("TRIPJOURNAL_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

// ---- auth ------------------------------------------------------------------

func runRegister(ctx context.Context, client *journal.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	password := fs.String("password", "", "password, min 8 characters (required)")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("register: -username and -password are required")
	}
	if _, err := client.Register(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s\n", *username)
	return nil
}

func runLogin(ctx context.Context, client *journal.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("username", "", "username (required)")
	password := fs.String("password", "", "password (required)")
	fs.Parse(args)

	if *username == "" || *password == "" {
		return errors.New("login: -username and -password are required")
	}
	if _, err := client.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Printf("logged in as %s\n", *username)
	return nil
}

// ---- trips -----------------------------------------------------------------

func runTrips(ctx context.Context, client *journal.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("trips: expected one of list, show, create, update, delete")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "list":
		trips, err := client.Trips(ctx)
		if err != nil {
			return err
		}
		if len(trips) == 0 {
			fmt.Println("no trips")
			return nil
		}
		for _, t := range trips {
			fmt.Printf("%d\t%s\t%s .. %s\t%d events\n",
				t.ID, t.Name, dateOnly(t.StartDate), dateOnly(t.EndDate), len(t.Events))
		}
		return nil

	case "show":
		fs := flag.NewFlagSet("trips show", flag.ExitOnError)
		id := fs.Int("id", 0, "trip id (required)")
		fs.Parse(args)
		if *id == 0 {
			return errors.New("trips show: -id is required")
		}
		trip, err := client.Trip(ctx, *id)
		if err != nil {
			return err
		}
		printTrip(trip)
		return nil

	case "create", "update":
		fs := flag.NewFlagSet("trips "+sub, flag.ExitOnError)
		id := fs.Int("id", 0, "trip id (update only)")
		name := fs.String("name", "", "trip name (required)")
		start := fs.String("start", "", "start date, YYYY-MM-DD (required)")
		end := fs.String("end", "", "end date, YYYY-MM-DD (required)")
		fs.Parse(args)

		form, err := tripForm(*name, *start, *end)
		if err != nil {
			return err
		}

		var trip domain.Trip
		if sub == "create" {
			trip, err = client.CreateTrip(ctx, form)
		} else {
			if *id == 0 {
				return errors.New("trips update: -id is required")
			}
			trip, err = client.UpdateTrip(ctx, *id, form)
		}
		if err != nil {
			return err
		}
		fmt.Printf("trip %d: %s\n", trip.ID, trip.Name)
		return nil

	case "delete":
		fs := flag.NewFlagSet("trips delete", flag.ExitOnError)
		id := fs.Int("id", 0, "trip id (required)")
		fs.Parse(args)
		if *id == 0 {
			return errors.New("trips delete: -id is required")
		}
		if err := client.DeleteTrip(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("trip %d deleted\n", *id)
		return nil

	default:
		return fmt.Errorf("trips: unknown subcommand %q", sub)
	}
}

func tripForm(name, start, end string) (journal.TripForm, error) {
	if name == "" || start == "" || end == "" {
		return journal.TripForm{}, errors.New("trips: -name, -start, and -end are required")
	}
	startT, err := parseDate(start)
	if err != nil {
		return journal.TripForm{}, fmt.Errorf("bad -start: %w", err)
	}
	endT, err := parseDate(end)
	if err != nil {
		return journal.TripForm{}, fmt.Errorf("bad -end: %w", err)
	}
	return journal.TripForm{Name: name, Start: startT, End: endT}, nil
}

// ---- events ----------------------------------------------------------------

func runEvents(ctx context.Context, client *journal.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("events: expected one of create, update, delete")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "create", "update":
		fs := flag.NewFlagSet("events "+sub, flag.ExitOnError)
		id := fs.Int("id", 0, "event id (update only)")
		trip := fs.Int("trip", 0, "trip id (create only)")
		name := fs.String("name", "", "event name (required)")
		date := fs.String("date", "", "event date, YYYY-MM-DD or RFC 3339 (required)")
		note := fs.String("note", "", "free-form note")
		lat := fs.Float64("lat", 0, "latitude (use with -lon)")
		lon := fs.Float64("lon", 0, "longitude (use with -lat)")
		address := fs.String("address", "", "location address")
		transition := fs.String("transition", "", "how you got here from the previous event")
		fs.Parse(args)

		form, err := eventForm(fs, *trip, *name, *date, *note, *lat, *lon, *address, *transition)
		if err != nil {
			return err
		}

		var ev domain.Event
		if sub == "create" {
			if *trip == 0 {
				return errors.New("events create: -trip is required")
			}
			ev, err = client.CreateEvent(ctx, form)
		} else {
			if *id == 0 {
				return errors.New("events update: -id is required")
			}
			ev, err = client.UpdateEvent(ctx, *id, form)
		}
		if err != nil {
			return err
		}
		fmt.Printf("event %d: %s on %s\n", ev.ID, ev.Name, dateOnly(ev.Date))
		return nil

	case "delete":
		fs := flag.NewFlagSet("events delete", flag.ExitOnError)
		id := fs.Int("id", 0, "event id (required)")
		fs.Parse(args)
		if *id == 0 {
			return errors.New("events delete: -id is required")
		}
		if err := client.DeleteEvent(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("event %d deleted\n", *id)
		return nil

	default:
		return fmt.Errorf("events: unknown subcommand %q", sub)
	}
}

func eventForm(fs *flag.FlagSet, trip int, name, date, note string, lat, lon float64, address, transition string) (journal.EventForm, error) {
	if name == "" || date == "" {
		return journal.EventForm{}, errors.New("events: -name and -date are required")
	}
	dateT, err := parseDate(date)
	if err != nil {
		return journal.EventForm{}, fmt.Errorf("bad -date: %w", err)
	}

	form := journal.EventForm{
		TripID: trip,
		Name:   name,
		Date:   dateT,
	}
	if note != "" {
		form.Note = &note
	}
	if transition != "" {
		form.TransitionFromPrevious = &transition
	}
	if flagSet(fs, "lat") || flagSet(fs, "lon") {
		if !flagSet(fs, "lat") || !flagSet(fs, "lon") {
			return journal.EventForm{}, errors.New("events: -lat and -lon must be given together")
		}
		form.Location = &domain.Location{Latitude: lat, Longitude: lon}
		if address != "" {
			form.Location.Address = &address
		}
	}
	return form, nil
}

// flagSet reports whether the named flag was explicitly passed. Needed for
// -lat/-lon where the zero value is a legal coordinate.
func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// ---- media -----------------------------------------------------------------

func runMedia(ctx context.Context, client *journal.Client, args []string) error {
	if len(args) < 1 {
		return errors.New("media: expected one of upload, delete")
	}
	sub, args := args[0], args[1:]

	switch sub {
	case "upload":
		fs := flag.NewFlagSet("media upload", flag.ExitOnError)
		event := fs.Int("event", 0, "event id (required)")
		file := fs.String("file", "", "path of the photo to upload (required)")
		caption := fs.String("caption", "", "caption")
		fs.Parse(args)

		if *event == 0 || *file == "" {
			return errors.New("media upload: -event and -file are required")
		}
		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}

		upload := journal.MediaUpload{EventID: *event, Data: data}
		if *caption != "" {
			upload.Caption = caption
		}
		media, err := client.UploadMedia(ctx, upload)
		if err != nil {
			return err
		}
		fmt.Printf("media %d: %s\n", media.ID, media.URL)
		return nil

	case "delete":
		fs := flag.NewFlagSet("media delete", flag.ExitOnError)
		id := fs.Int("id", 0, "media id (required)")
		fs.Parse(args)
		if *id == 0 {
			return errors.New("media delete: -id is required")
		}
		if err := client.DeleteMedia(ctx, *id); err != nil {
			return err
		}
		fmt.Printf("media %d deleted\n", *id)
		return nil

	default:
		return fmt.Errorf("media: unknown subcommand %q", sub)
	}
}

// ---- export ----------------------------------------------------------------

func runExport(ctx context.Context, client *journal.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)

	trips, err := client.Trips(ctx)
	if err != nil {
		return err
	}
	rows := journal.FlattenTrips(trips)

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := journal.WriteCSV(w, rows); err != nil {
		return err
	}
	if *out != "" {
		fmt.Printf("wrote %d rows to %s\n", len(rows), *out)
	}
	return nil
}

// ---- output ----------------------------------------------------------------

func printTrip(t domain.Trip) {
	fmt.Printf("%d\t%s\t%s .. %s\n", t.ID, t.Name, dateOnly(t.StartDate), dateOnly(t.EndDate))
	for _, e := range t.Events {
		line := fmt.Sprintf("  %d\t%s\t%s", e.ID, dateOnly(e.Date), e.Name)
		if e.Location != nil && e.Location.Address != nil {
			line += "\t@ " + *e.Location.Address
		}
		fmt.Println(line)
		if e.Note != nil {
			fmt.Printf("      %s\n", *e.Note)
		}
		for _, m := range e.Medias {
			fmt.Printf("      media %d: %s\n", m.ID, m.URL)
		}
	}
}

func dateOnly(t domain.WireTime) string {
	return t.Format("2006-01-02")
}

// parseDate accepts a plain date or a full RFC 3339 timestamp, interpreted
// in the local time zone when no offset is given.
func parseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "tripctl:", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprint(os.Stderr, strings.TrimLeft(`
usage: tripctl <command> [flags]

commands:
  register  -username U -password P    create an account and log in
  login     -username U -password P    log in
  logout                               forget the stored credential
  trips     list | show | create | update | delete
  events    create | update | delete
  media     upload | delete
  export    [-o file]                  write all trips as CSV

environment:
  TRIPJOURNAL_BASE_URL   API base URL (default `+defaultBaseURL+`)
  TRIPJOURNAL_DEBUG      set to any value for debug logging
`, "\n"))
}
