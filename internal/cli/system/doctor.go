package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/codelit/internal/cli"
	"github.com/julianstephens/codelit/internal/constants"
	"github.com/julianstephens/codelit/internal/journal"
	"github.com/julianstephens/codelit/internal/logger"
	"github.com/julianstephens/codelit/internal/migration"
	"github.com/julianstephens/codelit/internal/models"
	"github.com/julianstephens/codelit/internal/storage"
)

// schemaReporter is implemented by the SQL-backed stores.
type schemaReporter interface {
	SchemaStatus() (migration.Status, error)
}

type DoctorCmd struct {
	Fix bool `help:"Repair duplicate meditations left by older versions."`
}

type check struct {
	name     string
	run      func(*cli.Context) error
	needsDB  bool
	warnOnly bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Schema version", run: checkSchemaVersion, needsDB: true},
		{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
		{name: "Stored lists parse", run: checkBlobsParse, needsDB: true},
		{name: "Meditation dates", run: checkMeditationDates, needsDB: true},
		{name: "Prayer ids", run: checkPrayerIDs, needsDB: true},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	}

	hasError := false
	dbReachable := true
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	if dbReachable {
		if err := cmd.checkDuplicates(ctx); err != nil {
			fmt.Printf("❌ Duplicate meditations: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Duplicate meditations: OK\n")
		}
	} else {
		fmt.Printf("⊘ Duplicate meditations: SKIPPED (store not reachable)\n")
	}

	fmt.Println()
	fmt.Printf("Logs: %s\n", logger.Path(ctx.ConfigDir))
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if _, err := ctx.Store.Keys(); err != nil {
		return fmt.Errorf("failed to read keys: %w", err)
	}
	return ctx.Open()
}

func checkSchemaVersion(ctx *cli.Context) error {
	reporter, ok := ctx.Store.(schemaReporter)
	if !ok {
		// File stores have no schema
		return nil
	}
	status, err := reporter.SchemaStatus()
	if err != nil {
		return err
	}
	if status.Current > status.Latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", status.Current, status.Latest)
	}
	if status.Pending > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	backups, err := ctx.Backups().ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'codelit backup create'")
	}
	return nil
}

// checkBlobsParse catches lists that load as empty because they are corrupt.
func checkBlobsParse(ctx *cli.Context) error {
	targets := map[string]any{
		constants.KeyMeditations:         &[]models.Meditation{},
		constants.KeyMeditationPrayers:   &[]models.Prayer{},
		constants.KeyIntercessoryPrayers: &[]models.Intercession{},
	}
	for _, key := range []string{constants.KeyMeditations, constants.KeyMeditationPrayers, constants.KeyIntercessoryPrayers} {
		data, err := ctx.Store.Get(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if err := json.Unmarshal(data, targets[key]); err != nil {
			return fmt.Errorf("%s is not a valid list (restore a backup): %w", key, err)
		}
	}
	return nil
}

func checkMeditationDates(ctx *cli.Context) error {
	for _, m := range ctx.Journal.All() {
		if !journal.ValidDate(m.Date) {
			return fmt.Errorf("meditation %q has invalid date %q", m.Title, m.Date)
		}
	}
	return nil
}

func checkPrayerIDs(ctx *cli.Context) error {
	seen := make(map[string]bool)
	for _, p := range ctx.Prayers.All() {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("prayer %q has a missing or duplicate id", p.Title)
		}
		seen[p.ID] = true
	}
	for _, p := range ctx.Intercessions.All() {
		if p.ID == "" || seen[p.ID] {
			return fmt.Errorf("intercession %q has a missing or duplicate id", p.Title)
		}
		seen[p.ID] = true
	}
	return nil
}

func (cmd *DoctorCmd) checkDuplicates(ctx *cli.Context) error {
	dups := ctx.Journal.Duplicates()
	if len(dups) == 0 {
		return nil
	}
	if !cmd.Fix {
		return fmt.Errorf("%d dates have more than one meditation (%v); run 'codelit doctor --fix'", len(dups), dups)
	}
	removed, err := ctx.Journal.Dedupe()
	if err != nil {
		return fmt.Errorf("failed to repair duplicates: %w", err)
	}
	fmt.Printf("   Fixed: removed %d duplicate meditations\n", removed)
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC, calendar days follow UTC\n")
	}
	return nil
}
