package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avigny/taskforge/config"
	"github.com/avigny/taskforge/core/model"
	"github.com/avigny/taskforge/core/schedule"
	"github.com/avigny/taskforge/pkg/export"
)

var (
	planTasksPath     string
	planBlackoutsPath string
	planRole          string
	planDeadline      string
	planFormat        string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Schedule candidate tasks from a file",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planTasksPath, "tasks", "", "JSON file with candidate tasks")
	planCmd.Flags().StringVar(&planBlackoutsPath, "blackouts", "", "JSON file with blackout slots")
	planCmd.Flags().StringVar(&planRole, "role", "Backend", "execution role")
	planCmd.Flags().StringVar(&planDeadline, "deadline", "", "deadline (RFC 3339 or YYYY-MM-DD)")
	planCmd.Flags().StringVar(&planFormat, "format", "json", "output format: json or csv")
	_ = planCmd.MarkFlagRequired("tasks")
	_ = planCmd.MarkFlagRequired("deadline")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	// The one-shot planner works without a configuration file.
	cfg := &config.Config{}
	if _, statErr := os.Stat(cfgPath); statErr == nil {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg.Planner.SetDefaults()
	}

	var tasks []model.CandidateTask
	if err := readJSONFile(planTasksPath, &tasks); err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	var blackouts []model.BlackoutSlot
	if planBlackoutsPath != "" {
		if err := readJSONFile(planBlackoutsPath, &blackouts); err != nil {
			return fmt.Errorf("read blackouts: %w", err)
		}
	}

	role := model.Role(planRole)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", planRole)
	}
	deadline, err := parsePlanDeadline(planDeadline)
	if err != nil {
		return err
	}

	result, err := schedule.Plan(schedule.Request{
		Tasks:     tasks,
		Role:      role,
		Deadline:  deadline,
		Blackouts: blackouts,
	}, cfg.Planner)
	if err != nil {
		return err
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	switch planFormat {
	case "json":
		return export.WriteJSON(os.Stdout, result.BackendTasks)
	case "csv":
		return export.WriteCSV(os.Stdout, result.BackendTasks)
	default:
		return fmt.Errorf("unknown format %q", planFormat)
	}
}

func readJSONFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

func parsePlanDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid deadline %q", s)
}
