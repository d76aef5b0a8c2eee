package cmd

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/talentsift/talentsift/internal/export"
	"github.com/talentsift/talentsift/internal/logger"
	"github.com/talentsift/talentsift/internal/models"
	"github.com/talentsift/talentsift/internal/ranking"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score stored candidates against a job description file",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("job", "J", "", "path to a job description JSON file (required)")
	scoreCmd.Flags().StringP("output", "o", "", "write the ranked shortlist to this .xlsx file")
	scoreCmd.MarkFlagRequired("job")
}

// jobFile is the on-disk job description submitted to the score command.
type jobFile struct {
	Role             string   `json:"role"`
	Skills           []string `json:"skills"`
	ExperienceYears  int      `json:"experience_years"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	Keywords         []string `json:"keywords"`
}

func score(cmd *cobra.Command) {
	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer zlog.Sync()

	cfg, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	jobPath, _ := cmd.Flags().GetString("job")
	data, err := os.ReadFile(jobPath)
	if err != nil {
		zlog.Fatal("reading job description file", zap.Error(err))
	}
	var jf jobFile
	if err := json.Unmarshal(data, &jf); err != nil {
		zlog.Fatal("parsing job description file", zap.Error(err))
	}

	jd, err := models.NewJobDescription(jf.Role, jf.Skills, jf.ExperienceYears,
		jf.Responsibilities, jf.Requirements, jf.Keywords)
	if err != nil {
		zlog.Fatal("invalid job description", zap.Error(err))
	}

	ctx := context.Background()
	app, err := buildApplication(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("building application", zap.Error(err))
	}
	defer app.Close()

	profiles, err := app.store.List()
	if err != nil {
		zlog.Fatal("listing stored candidates", zap.Error(err))
	}
	if len(profiles) == 0 {
		zlog.Info("no stored candidates to score")
		return
	}

	records := make([]models.ScoreRecord, 0, len(profiles))
	for _, p := range profiles {
		records = append(records, app.engine.Score(ctx, p, jd))
	}
	ranked := ranking.Rank(records)

	for _, r := range ranked {
		zlog.Info("ranked candidate",
			zap.Int("rank", r.Rank),
			zap.String("candidate", r.CandidateIdentity),
			zap.Float64("final_score", r.FinalScore),
			zap.Float64("percentile", r.Percentile),
			zap.String("recommendation", string(r.Recommendation)),
			zap.String("status", string(r.Status)))
	}

	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := export.ExportShortlist(ranked, jd, output); err != nil {
			zlog.Fatal("exporting shortlist", zap.Error(err))
		}
		zlog.Info("shortlist written", zap.String("path", output))
	}
}
