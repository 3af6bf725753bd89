package reference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	driftErrors "driftwatch/common/errors"
	"driftwatch/mocks/driftwatch/common/infrastructure/interfaces/utils"
	"driftwatch/pkg/dto/monitor"
)

var u *utils.DriftMockUtils

func init() {
	u = utils.NewApplicationServiceMock(map[string]string{})
}

func buildRows(n int) []map[string]monitor.FieldValue {
	rows := make([]map[string]monitor.FieldValue, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, map[string]monitor.FieldValue{
			"amount": monitor.NumberValue(float64(10 + i)),
			"label":  monitor.NumberValue(float64(i % 2)),
		})
	}
	return rows
}

func TestReferenceStore_UploadAndCurrent(t *testing.T) {
	store := NewReferenceStore(t.TempDir(), u.AppService.LoggingClient())
	assert.Nil(t, store.Current())

	metadata, err := store.Upload(buildRows(20), []string{"amount", "label"}, "test baseline")
	assert.Nil(t, err)
	assert.Equal(t, 20, metadata.Samples)
	assert.Equal(t, []string{"amount", "label"}, metadata.Features)

	current := store.Current()
	assert.NotNil(t, current)
	assert.Equal(t, 20, len(current.Records))
	assert.Equal(t, []string{"amount", "label"}, current.FeatureNames)
	assert.Equal(t, 15.0, current.Records[5]["amount"])
}

func TestReferenceStore_UploadEmptyFails(t *testing.T) {
	store := NewReferenceStore(t.TempDir(), u.AppService.LoggingClient())
	_, err := store.Upload(buildRows(5), nil, "")
	assert.Nil(t, err)
	before := store.Current()

	_, uploadErr := store.Upload(nil, []string{"amount"}, "")
	assert.NotNil(t, uploadErr)
	assert.True(t, uploadErr.IsErrorType(driftErrors.ErrorTypeEmptyDataset))
	// baseline unchanged
	assert.Same(t, before, store.Current())
}

func TestReferenceStore_InfersFeatureNames(t *testing.T) {
	store := NewReferenceStore(t.TempDir(), u.AppService.LoggingClient())
	metadata, err := store.Upload(buildRows(3), nil, "")
	assert.Nil(t, err)
	// inferred from the first record's keys, sorted
	assert.Equal(t, []string{"amount", "label"}, metadata.Features)
}

func TestReferenceStore_FeatureTypeInference(t *testing.T) {
	store := NewReferenceStore(t.TempDir(), u.AppService.LoggingClient())
	_, err := store.Upload(buildRows(50), []string{"amount", "label"}, "")
	assert.Nil(t, err)

	current := store.Current()
	assert.Equal(t, monitor.FeatureTypeContinuous, current.FeatureTypes["amount"])
	assert.Equal(t, monitor.FeatureTypeCategorical, current.FeatureTypes["label"])
}

func TestReferenceStore_PersistAndReload(t *testing.T) {
	dir := t.TempDir()
	store := NewReferenceStore(dir, u.AppService.LoggingClient())
	_, err := store.Upload(buildRows(10), []string{"amount", "label"}, "persisted baseline")
	assert.Nil(t, err)
	assert.FileExists(t, filepath.Join(dir, ReferenceFileName))
	assert.FileExists(t, filepath.Join(dir, MetadataFileName))

	// a fresh store on the same directory restores the baseline
	restored := NewReferenceStore(dir, u.AppService.LoggingClient())
	assert.True(t, restored.LoadFromDisk())
	current := restored.Current()
	assert.NotNil(t, current)
	assert.Equal(t, 10, len(current.Records))
	assert.Equal(t, "persisted baseline", current.Metadata.Description)
	assert.Equal(t, monitor.FeatureTypeCategorical, current.FeatureTypes["label"])
	assert.Equal(t, store.Current().Records, current.Records)
}

func TestReferenceStore_LoadFromDiskMissing(t *testing.T) {
	store := NewReferenceStore(t.TempDir(), u.AppService.LoggingClient())
	assert.False(t, store.LoadFromDisk())
	assert.Nil(t, store.Current())
}

func TestReferenceStore_LoadFromDiskCorrupt(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ReferenceFileName), []byte("amount\nnot-a-number\n"), 0644)
	assert.NoError(t, err)

	store := NewReferenceStore(dir, u.AppService.LoggingClient())
	// parse failure is treated as "no baseline", not fatal
	assert.False(t, store.LoadFromDisk())
	assert.Nil(t, store.Current())
}

func TestReferenceStore_NonNumericValuesSkipped(t *testing.T) {
	store := NewReferenceStore(t.TempDir(), u.AppService.LoggingClient())
	rows := []map[string]monitor.FieldValue{
		{"amount": monitor.NumberValue(1), "note": monitor.StringValue("free text")},
		{"amount": monitor.NumberValue(2), "note": monitor.NullValue()},
	}
	_, err := store.Upload(rows, []string{"amount", "note"}, "")
	assert.Nil(t, err)
	current := store.Current()
	assert.Equal(t, []float64{1, 2}, current.Column("amount"))
	assert.Empty(t, current.Column("note"))
}
