package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/crewdeckhq/crewdeck/internal/config"
	"github.com/crewdeckhq/crewdeck/pkg/core/model"
	"github.com/crewdeckhq/crewdeck/pkg/core/services"
	"github.com/crewdeckhq/crewdeck/pkg/core/suggest"
	"github.com/crewdeckhq/crewdeck/pkg/mailer"
	"github.com/crewdeckhq/crewdeck/pkg/postgres"
	"github.com/crewdeckhq/crewdeck/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	cfg       *config.Config
	database  *postgres.DB
	publisher *mailer.Publisher
	logger    *zap.Logger
	ctx       context.Context
}

var (
	env     string
	verbose bool
	app     *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "crewdeck",
		Short: "Crewdeck CLI - Manage worker schedules and job assignments",
		Long:  `A CLI tool for managing worker availability, schedule exceptions, and ranked assignment suggestions.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app == nil {
				return
			}
			if app.publisher != nil {
				app.publisher.Close()
			}
			if app.database != nil {
				app.database.Close()
			}
			if app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug detail to the console")

	// Add all commands
	rootCmd.AddCommand(suggestWorkersCmd())
	rootCmd.AddCommand(updateScheduleCmd())
	rootCmd.AddCommand(addExceptionCmd())
	rootCmd.AddCommand(decideExceptionCmd())
	rootCmd.AddCommand(findConflictsCmd())
	rootCmd.AddCommand(listWorkersCmd())
	rootCmd.AddCommand(syncHolidaysCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, and the notification publisher
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	// Initialize logger
	app.logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.logger.Info("Starting application", zap.String("environment", env))

	// Load configuration
	app.logger.Info("Loading configuration")
	app.cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.logger.Debug("Configuration loaded successfully")

	envCfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}

	// Connect to the database and bring the schema up to date
	app.logger.Info("Connecting to database")
	app.database, err = postgres.NewDB(app.ctx, envCfg.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.database.RunMigrations(app.ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	app.logger.Debug("Database ready")

	// Connect the notification publisher when a broker is configured
	if envCfg.RabbitMQDSN != "" {
		app.logger.Info("Connecting to message broker")
		app.publisher, err = mailer.NewPublisher(envCfg.RabbitMQDSN)
		if err != nil {
			return fmt.Errorf("failed to connect to message broker: %w", err)
		}
		app.logger.Debug("Message broker connected")
	} else {
		app.logger.Info("RABBITMQ_DSN not set, decision notifications disabled")
	}

	return nil
}

// notifier returns the publisher as the service interface. It stays nil when
// no broker is configured; wrapping the nil pointer in the interface would
// defeat the publisher == nil check in the service.
func notifier() services.NotificationPublisher {
	if app.publisher == nil {
		return nil
	}
	return app.publisher
}

// Command definitions

func suggestWorkersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggestWorkers <job_id>",
		Short: "Suggest ranked worker and crew assignments for a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobID := args[0]

			scoringCfg := suggest.Config{
				Criteria: suggest.DefaultCriteria(suggest.Weights{
					AvailabilityFit: app.cfg.Scoring.AvailabilityFitWeight,
					Rating:          app.cfg.Scoring.RatingWeight,
					Proficiency:     app.cfg.Scoring.ProficiencyWeight,
				}, app.cfg.Scoring.ComfortSlackMinutes),
				MaxAlternates: app.cfg.Scoring.MaxAlternates,
			}
			if cmd.Flags().Changed("alternates") {
				alternates, _ := cmd.Flags().GetInt("alternates")
				scoringCfg.MaxAlternates = alternates
			}

			result, err := services.GenerateSuggestions(app.ctx, app.database, scoringCfg, app.logger, jobID)
			if err != nil {
				return err
			}

			printSuggestions(result)
			return nil
		},
	}

	cmd.Flags().Int("alternates", 0, "Extra alternate bundles beyond the best (-1 for none)")

	return cmd
}

func printSuggestions(result *services.SuggestionOutcome) {
	roleNames := make(map[string]string, len(result.Roles))
	for _, role := range result.Roles {
		roleNames[role.ID] = role.Name
	}

	fmt.Printf("\n✓ Suggestions generated for %q\n\n", result.Job.Title)
	fmt.Printf("Window:   %s to %s\n",
		result.Job.Window.Start.Format("2006-01-02 15:04"),
		result.Job.Window.End.Format("2006-01-02 15:04"))
	if result.Job.Location != "" {
		fmt.Printf("Location: %s\n", result.Job.Location)
	}
	fmt.Printf("Needs:    ")
	for i, req := range result.Job.Requirements {
		if i > 0 {
			fmt.Printf(", ")
		}
		fmt.Printf("%d x %s", req.Quantity, roleNames[req.RoleID])
		if req.MinLevel > 0 {
			fmt.Printf(" (level %d+)", req.MinLevel)
		}
	}
	fmt.Printf("\n\n")

	if len(result.Candidates) == 0 {
		fmt.Println("No viable candidates found.")
	}

	for i, candidate := range result.Candidates {
		header := fmt.Sprintf("Option %d", i+1)
		if candidate.CrewName != "" {
			header = fmt.Sprintf("%s - crew %q", header, candidate.CrewName)
		}
		fmt.Printf("%s (score %.1f, est. cost %.2f):\n", header, candidate.TotalScore, candidate.EstimatedCost)
		for _, worker := range candidate.Workers {
			lead := ""
			if worker.IsLead {
				lead = " [lead]"
			}
			fmt.Printf("  - %s as %s (level %d, score %.1f, rate %.2f/h)%s\n",
				worker.Name, roleNames[worker.RoleID], worker.Level, worker.Score, worker.SuggestedRate, lead)
		}
		for _, c := range candidate.Conflicts {
			fmt.Printf("  ! %s\n", c.Description)
		}
		fmt.Println()
	}

	if len(result.Skipped) > 0 {
		fmt.Printf("Skipped %d workers:\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Printf("  ✗ %s: %s\n", s.Name, s.Reason)
		}
		fmt.Println()
	}
}

func updateScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "updateSchedule <worker_id> <schedule_file>",
		Short: "Replace a worker's weekly schedule from a YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workerID := args[0]

			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("failed to read schedule file: %w", err)
			}

			var draft model.WeeklyScheduleDraft
			if err := yaml.Unmarshal(data, &draft); err != nil {
				return fmt.Errorf("failed to parse schedule file: %w", err)
			}

			result, err := services.UpdateSchedule(app.ctx, app.database, app.logger, workerID, draft)
			if err != nil {
				return err
			}

			if len(result.Violations) > 0 {
				printViolations(result.Violations)
				return nil
			}

			fmt.Printf("\n✓ Schedule updated for %s!\n\n", result.WorkerName)
			for d := model.Monday; d <= model.Sunday; d++ {
				day := result.Schedule.Day(d)
				if !day.Available {
					fmt.Printf("  %-10s off\n", d)
					continue
				}
				fmt.Printf("  %-10s %s-%s", d, day.Start, day.End)
				if day.BreakMinutes > 0 {
					fmt.Printf(" (%d min break)", day.BreakMinutes)
				}
				fmt.Println()
			}
			fmt.Printf("\nNet week: %.1f hours\n\n", float64(result.Schedule.NetWeekMinutes())/60)

			return nil
		},
	}
}

func addExceptionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addException <worker_id> <type> <title> <start_date> <end_date>",
		Short: "File a pending schedule exception for a worker",
		Long: `File a pending schedule exception (vacation, sick, personal, holiday or
emergency) covering the inclusive date range. The exception blocks the whole
day unless --start-time and --end-time narrow it to a window.`,
		Args: cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, _ := cmd.Flags().GetString("start-time")
			endTime, _ := cmd.Flags().GetString("end-time")
			notes, _ := cmd.Flags().GetString("notes")

			draft := model.ExceptionDraft{
				Type:      args[1],
				Title:     args[2],
				StartDate: args[3],
				EndDate:   args[4],
				FullDay:   startTime == "" && endTime == "",
				StartTime: startTime,
				EndTime:   endTime,
				Notes:     notes,
			}

			result, err := services.AddException(app.ctx, app.database, app.database, app.logger, args[0], draft, time.Now())
			if err != nil {
				return err
			}

			if len(result.Violations) > 0 {
				printViolations(result.Violations)
				return nil
			}

			ex := result.Exception
			fmt.Printf("\n✓ Exception filed!\n\n")
			fmt.Printf("ID:     %s\n", ex.ID)
			fmt.Printf("Title:  %s (%s)\n", ex.Title, ex.Type)
			fmt.Printf("Dates:  %s to %s\n", ex.StartDate.Format("2006-01-02"), ex.EndDate.Format("2006-01-02"))
			if !ex.FullDay {
				fmt.Printf("Window: %s-%s each day\n", ex.StartTime, ex.EndTime)
			}
			fmt.Printf("Status: %s\n\n", ex.Status)

			return nil
		},
	}

	cmd.Flags().String("start-time", "", "Daily window start as HH:MM (with --end-time)")
	cmd.Flags().String("end-time", "", "Daily window end as HH:MM (with --start-time)")
	cmd.Flags().String("notes", "", "Free-form note for the approver")

	return cmd
}

func decideExceptionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decideException <exception_id> <approve|reject>",
		Short: "Approve or reject a pending schedule exception",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var decision model.ExceptionStatus
			switch strings.ToLower(args[1]) {
			case "approve":
				decision = model.StatusApproved
			case "reject":
				decision = model.StatusRejected
			default:
				return fmt.Errorf("decision must be approve or reject, got %q", args[1])
			}

			result, err := services.DecideException(app.ctx, app.database, app.database, notifier(), app.logger, args[0], decision)
			if err != nil {
				return err
			}

			ex := result.Exception
			fmt.Printf("\n✓ Exception %s!\n\n", ex.Status)
			fmt.Printf("Worker: %s\n", result.WorkerName)
			fmt.Printf("Title:  %s (%s)\n", ex.Title, ex.Type)
			fmt.Printf("Dates:  %s to %s\n", ex.StartDate.Format("2006-01-02"), ex.EndDate.Format("2006-01-02"))
			if result.Notified {
				fmt.Printf("\nNotification queued for the worker.\n\n")
			} else {
				fmt.Printf("\nNo notification sent.\n\n")
			}

			return nil
		},
	}
}

func findConflictsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "findConflicts <worker_id> <start> <end>",
		Short: "Check a worker's calendar against a proposed assignment window",
		Long: `Check whether approved exceptions or existing commitments block the worker
from the given window. Times accept RFC3339, "2006-01-02 15:04" or a plain
date (midnight).`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseWhen(args[1])
			if err != nil {
				return fmt.Errorf("invalid start: %w", err)
			}
			end, err := parseWhen(args[2])
			if err != nil {
				return fmt.Errorf("invalid end: %w", err)
			}

			window := model.TimeRange{Start: start, End: end}
			report, err := services.FindConflicts(app.ctx, app.database, app.database, app.database, app.logger, args[0], window)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Conflict check for %s\n\n", report.WorkerName)
			fmt.Printf("Window: %s to %s\n\n",
				report.Window.Start.Format("2006-01-02 15:04"),
				report.Window.End.Format("2006-01-02 15:04"))

			if len(report.Conflicts) == 0 {
				fmt.Printf("No conflicts found.\n\n")
				return nil
			}

			fmt.Printf("Found %d conflicts:\n", len(report.Conflicts))
			for _, c := range report.Conflicts {
				fmt.Printf("  ! [%s] %s\n", c.Kind, c.Description)
			}
			fmt.Println()

			return nil
		},
	}
}

func listWorkersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listWorkers",
		Short: "List the worker roster with qualifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := services.ListWorkers(app.ctx, app.database, app.database, app.logger)
			if err != nil {
				return err
			}

			fmt.Printf("\nFound %d workers:\n\n", len(workers))
			for _, w := range workers {
				status := "active"
				if !w.IsActive {
					status = "inactive"
				}
				rate := "no rate on file"
				if w.HourlyRate > 0 {
					rate = fmt.Sprintf("%.2f/h", w.HourlyRate)
				}
				fmt.Printf("- %s (%s) - %s - rating %.1f - %s - %s\n",
					w.Name, w.ID, status, w.Rating, rate, w.Email)
				for _, q := range w.Qualifications {
					fmt.Printf("    %s (level %d)\n", q.RoleName, q.Level)
				}
			}
			fmt.Println()

			return nil
		},
	}
}

func syncHolidaysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syncHolidays",
		Short: "File approved holiday exceptions for upcoming company holidays",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			horizon, _ := cmd.Flags().GetInt("horizon")

			rules := make([]services.HolidayRule, 0, len(app.cfg.HolidayRules))
			for _, hr := range app.cfg.HolidayRules {
				// Rule syntax was already checked at config load
				rule, err := rrule.StrToRRule(hr.RRule)
				if err != nil {
					return fmt.Errorf("invalid holiday rule %q: %w", hr.Title, err)
				}
				rules = append(rules, services.HolidayRule{Title: hr.Title, Rule: rule})
			}

			result, err := services.SyncHolidayCalendar(app.ctx, app.database, app.database, app.logger, rules, time.Now(), horizon)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Holiday calendar synced!\n\n")
			fmt.Printf("Holidays in the next %d days:\n", horizon)
			for i, date := range result.Dates {
				fmt.Printf("  %2d. %s\n", i+1, date.Format("2006-01-02 (Monday)"))
			}
			fmt.Printf("\nWorkers covered:  %d\n", result.Workers)
			fmt.Printf("Exceptions filed: %d\n", result.Created)
			fmt.Printf("Already covered:  %d\n\n", result.Skipped)

			return nil
		},
	}

	cmd.Flags().Int("horizon", 365, "How many days ahead to sync")

	return cmd
}

func printViolations(violations []model.Violation) {
	fmt.Printf("\n✗ Not saved, %d validation problems:\n\n", len(violations))
	for _, v := range violations {
		fmt.Printf("  - %s\n", v)
	}
	fmt.Println()
}

func parseWhen(s string) (time.Time, error) {
	layouts := []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
