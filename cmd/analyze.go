package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jobfit/jobfit/internal/ai"
	"github.com/jobfit/jobfit/internal/analyzer"
	"github.com/jobfit/jobfit/internal/docparse"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"
)

var errExit = errors.New("exit requested")

var pitchPrompt = promptui.Select{
	Label: "Generate an outreach pitch?",
	Items: []string{PromptYes, PromptNo},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file> <job-description-file>",
	Short: "Analyze how well a resume fits a job description",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolP("no-pitch", "n", false, "print the report and exit without offering a pitch")
}

// analyze runs the pipeline against two local documents and prints the report.
func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	zlog, err := newLogger()
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	resumeText, err := readDocument(args[0])
	if err != nil {
		zlog.Fatal("reading resume", zap.Error(err))
	}

	jobText, err := readDocument(args[1])
	if err != nil {
		zlog.Fatal("reading job description", zap.Error(err))
	}

	pipeline, err := buildPipeline(ctx, config, zlog)
	if err != nil {
		zlog.Fatal("building analysis pipeline", zap.Error(err))
	}

	report, err := pipeline.Analyze(ctx, resumeText, jobText)
	if err != nil {
		zlog.Fatal("analysis failed", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(pretty))

	if cmd.Flag("no-pitch").Value.String() == "true" {
		return
	}

	for {
		_, action, err := pitchPrompt.Run()
		if err != nil {
			zlog.Fatal("exiting", zap.Error(err))
		}
		if action == PromptNo {
			return
		}

		if err := generatePitch(ctx, pipeline, report, resumeText, jobText); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("generating pitch", zap.Error(err))
		}
	}
}

// generatePitch asks for the pitch options and prints the result. An extended
// pitch is always formal, so the tone question is skipped for it.
func generatePitch(ctx context.Context, pipeline *analyzer.Analyzer, report *analyzer.Report, resumeText, jobText string) error {
	lengthPrompt := promptui.Select{
		Label: "Pitch length",
		Items: []string{ai.PitchLengthShort, ai.PitchLengthExtended},
	}
	_, length, err := lengthPrompt.Run()
	if err != nil {
		return errExit
	}

	tone := ai.PitchToneFormal
	if length == ai.PitchLengthShort {
		tonePrompt := promptui.Select{
			Label: "Pitch tone",
			Items: []string{ai.PitchToneFormal, ai.PitchToneCasual},
		}
		if _, tone, err = tonePrompt.Run(); err != nil {
			return errExit
		}
	}

	pitch, err := pipeline.Pitch(ctx, analyzer.PitchRequest{
		ResumeText:     resumeText,
		JobDescription: jobText,
		MatchScore:     report.MatchScore,
		SkillOverlap:   report.SkillOverlap,
		Length:         length,
		Tone:           tone,
		JobRole:        report.JobRole,
		CompanyName:    report.CompanyName,
	})
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(pitch)
	fmt.Println()
	return nil
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return docparse.Extract(path, "", data)
}
