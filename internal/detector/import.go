package detector

import (
	"strings"
	"time"

	"github.com/alenon/tradeimport/internal/dto"
	"github.com/alenon/tradeimport/internal/logger"
	"github.com/alenon/tradeimport/internal/models"
	"github.com/alenon/tradeimport/internal/parsers"
)

const contentSampleLines = 5

// Import runs the full detect-then-parse pipeline for one file: pick a
// broker from the filename and, if needed, content signatures (unless the
// caller already knows it), then execute that broker's parser. broker may
// be "" to request detection. log may be nil; when given, it records the
// detection decision and any fill-to-trade aggregation that occurred.
func Import(raw []byte, sourceName string, broker models.Broker, accountID string, bucket parsers.AggregationBucket, log *logger.AppLogger) *dto.ParseResult {
	byFilename := false
	if broker == "" {
		if hint, ok := DetectFromFilename(sourceName); ok {
			broker, byFilename = hint, true
		} else {
			broker = DetectFromContent(sampleLines(raw, contentSampleLines))
		}
		if log != nil {
			log.LogDetection(sourceName, string(broker), byFilename)
		}
	}

	parser, ok := ParserFor(broker, bucket)
	if !ok {
		result := dto.NewParseResult(broker, models.NewTradeCollection(sourceName, broker, time.Now().UTC()))
		result.AddError(0, "", models.ErrUnsupportedBroker.Error(), string(broker))
		return result
	}

	result := parsers.Run(parser, raw, sourceName, accountID)
	if log != nil && result.ParsedSuccessfully != result.Trades.Len() {
		log.LogAggregation(string(broker), result.ParsedSuccessfully, result.Trades.Len(), time.Duration(bucket))
	}
	return result
}

func sampleLines(raw []byte, n int) []string {
	lines := strings.Split(string(raw), "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	return lines
}
