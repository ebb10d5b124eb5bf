package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := Load()

	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, []string{"windows1252", "iso8859_1"}, config.Decoding.FallbackOrder)
	assert.Equal(t, time.Minute, config.Aggregation.BucketDuration)
	assert.Equal(t, 2, config.Detection.NinjaTraderThreshold)
	assert.Equal(t, 3, config.Detection.MetaTraderThreshold)
	assert.Equal(t, "info", config.Logging.Level)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	_ = os.Setenv("DETECTION_NINJATRADER_THRESHOLD", "5")
	_ = os.Setenv("AGGREGATION_BUCKET_DURATION", "2s")
	_ = os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		_ = os.Unsetenv("DETECTION_NINJATRADER_THRESHOLD")
		_ = os.Unsetenv("AGGREGATION_BUCKET_DURATION")
		_ = os.Unsetenv("LOG_LEVEL")
	}()

	config, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 5, config.Detection.NinjaTraderThreshold)
	assert.Equal(t, 2*time.Second, config.Aggregation.BucketDuration)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadWithYAML_MissingFileFallsBackToDefaults(t *testing.T) {
	config, err := LoadWithYAML("/nonexistent/path/config.yaml")

	require.NoError(t, err)
	assert.Equal(t, time.Minute, config.Aggregation.BucketDuration)
}

func TestLoadWithYAML_FileValuesThenEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/config.yaml"
	yamlContent := "aggregation:\n  bucket_duration: 5s\ndetection:\n  binance_threshold: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(yamlContent), 0o644))

	config, err := LoadWithYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, config.Aggregation.BucketDuration)
	assert.Equal(t, 7, config.Detection.BinanceThreshold)

	_ = os.Setenv("DETECTION_BINANCE_THRESHOLD", "9")
	defer func() { _ = os.Unsetenv("DETECTION_BINANCE_THRESHOLD") }()

	config, err = LoadWithYAML(path)
	require.NoError(t, err)
	assert.Equal(t, 9, config.Detection.BinanceThreshold)
}

func TestGetEnv(t *testing.T) {
	_ = os.Setenv("TEST_VAR", "test_value")
	defer func() { _ = os.Unsetenv("TEST_VAR") }()

	value := getEnv("TEST_VAR", "default_value")
	assert.Equal(t, "test_value", value)
}

func TestGetEnv_Default(t *testing.T) {
	_ = os.Unsetenv("NON_EXISTENT_VAR")

	value := getEnv("NON_EXISTENT_VAR", "default_value")
	assert.Equal(t, "default_value", value)
}

func TestGetEnvAsInt(t *testing.T) {
	_ = os.Setenv("TEST_INT", "42")
	defer func() { _ = os.Unsetenv("TEST_INT") }()

	value := getEnvAsInt("TEST_INT", 10)
	assert.Equal(t, 42, value)
}

func TestGetEnvAsInt_Default(t *testing.T) {
	_ = os.Unsetenv("NON_EXISTENT_INT")

	value := getEnvAsInt("NON_EXISTENT_INT", 10)
	assert.Equal(t, 10, value)
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	_ = os.Setenv("INVALID_INT", "not_a_number")
	defer func() { _ = os.Unsetenv("INVALID_INT") }()

	value := getEnvAsInt("INVALID_INT", 10)
	assert.Equal(t, 10, value)
}

func TestGetEnvAsDuration(t *testing.T) {
	_ = os.Setenv("TEST_DURATION", "1h30m")
	defer func() { _ = os.Unsetenv("TEST_DURATION") }()

	duration := getEnvAsDuration("TEST_DURATION", 15*time.Minute)
	assert.Equal(t, 90*time.Minute, duration)
}

func TestGetEnvAsDuration_Default(t *testing.T) {
	_ = os.Unsetenv("NON_EXISTENT_DURATION")

	duration := getEnvAsDuration("NON_EXISTENT_DURATION", 15*time.Minute)
	assert.Equal(t, 15*time.Minute, duration)
}

func TestGetEnvAsDuration_Invalid(t *testing.T) {
	_ = os.Setenv("INVALID_DURATION", "invalid")
	defer func() { _ = os.Unsetenv("INVALID_DURATION") }()

	duration := getEnvAsDuration("INVALID_DURATION", 15*time.Minute)
	assert.Equal(t, 15*time.Minute, duration)
}

func TestGetEnvAsSlice(t *testing.T) {
	_ = os.Setenv("TEST_SLICE", "val1,val2,val3")
	defer func() { _ = os.Unsetenv("TEST_SLICE") }()

	slice := getEnvAsSlice("TEST_SLICE", []string{})
	assert.Equal(t, []string{"val1", "val2", "val3"}, slice)
}

func TestGetEnvAsSlice_Default(t *testing.T) {
	_ = os.Unsetenv("NON_EXISTENT_SLICE")

	slice := getEnvAsSlice("NON_EXISTENT_SLICE", []string{"default"})
	assert.Equal(t, []string{"default"}, slice)
}

func TestGetEnvAsSlice_Empty(t *testing.T) {
	_ = os.Setenv("EMPTY_SLICE", "")
	defer func() { _ = os.Unsetenv("EMPTY_SLICE") }()

	slice := getEnvAsSlice("EMPTY_SLICE", []string{"default"})
	assert.Equal(t, []string{"default"}, slice)
}

func TestGetEnvAsSlice_SingleValue(t *testing.T) {
	_ = os.Setenv("SINGLE_SLICE", "singlevalue")
	defer func() { _ = os.Unsetenv("SINGLE_SLICE") }()

	slice := getEnvAsSlice("SINGLE_SLICE", []string{})
	assert.Equal(t, []string{"singlevalue"}, slice)
}

func TestGetEnvAsBool(t *testing.T) {
	_ = os.Setenv("TEST_BOOL", "true")
	defer func() { _ = os.Unsetenv("TEST_BOOL") }()

	assert.True(t, getEnvAsBool("TEST_BOOL", false))
}

func TestGetEnvAsBool_Default(t *testing.T) {
	_ = os.Unsetenv("NON_EXISTENT_BOOL")

	assert.True(t, getEnvAsBool("NON_EXISTENT_BOOL", true))
}
