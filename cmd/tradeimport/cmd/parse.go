package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/alenon/tradeimport/internal/config"
	"github.com/alenon/tradeimport/internal/detector"
	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/logger"
	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/parsers"
	"github.com/alenon/tradeimport/internal/stats"
)

var (
	brokerFlag    string
	accountFlag   string
	withStatsFlag bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Detect a broker export's format, parse it, and print the result",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&brokerFlag, "broker", "", "skip detection and force this broker (e.g. interactive_brokers)")
	parseCmd.Flags().StringVar(&accountFlag, "account", "", "account identifier stamped onto every trade")
	parseCmd.Flags().BoolVar(&withStatsFlag, "stats", false, "also compute and print aggregate statistics")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.NewLogger(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	path := args[0]
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	bucket := parsers.AggregationBucket(cfg.Aggregation.BucketDuration)
	broker := models.Broker(brokerFlag)

	result := detector.Import(raw, filepath.Base(path), broker, accountFlag, bucket, log)

	log.LogImport(filepath.Base(path), string(result.BrokerDetected), result.ParsedSuccessfully, result.SkippedRows, len(result.Errors))
	for _, warning := range result.Warnings {
		log.Warn().Str("broker", string(result.BrokerDetected)).Msg(warning)
	}

	output := map[string]interface{}{"result": result}
	if withStatsFlag {
		output["stats"] = stats.Compute(result.Trades, dto.StatsFilter{})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
