package reports

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	driftErrors "driftwatch/common/errors"
	"driftwatch/mocks/driftwatch/common/infrastructure/interfaces/utils"
	"driftwatch/pkg/dto/monitor"
)

var u *utils.DriftMockUtils

func init() {
	u = utils.NewApplicationServiceMock(map[string]string{})
}

func newTestArchive(t *testing.T) *ReportArchive {
	return NewReportArchive(t.TempDir(), u.AppService.LoggingClient())
}

func TestReportArchive_SaveAndGet(t *testing.T) {
	archive := newTestArchive(t)
	at := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)

	name, err := archive.Save([]byte("<html>report</html>"), at)
	assert.Nil(t, err)
	assert.Equal(t, "drift_report_20260831_123045.html", name)

	content, err := archive.Get(name)
	assert.Nil(t, err)
	assert.Equal(t, []byte("<html>report</html>"), content)

	// cached second read returns the same content
	content, err = archive.Get(name)
	assert.Nil(t, err)
	assert.Equal(t, []byte("<html>report</html>"), content)
}

func TestReportArchive_SameSecondNamesStayUnique(t *testing.T) {
	archive := newTestArchive(t)
	at := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)

	first, err := archive.Save([]byte("one"), at)
	assert.Nil(t, err)
	second, err := archive.Save([]byte("two"), at)
	assert.Nil(t, err)
	third, err := archive.Save([]byte("three"), at)
	assert.Nil(t, err)

	assert.Equal(t, "drift_report_20260831_123045.html", first)
	assert.Equal(t, "drift_report_20260831_123045_1.html", second)
	assert.Equal(t, "drift_report_20260831_123045_2.html", third)

	content, err := archive.Get(second)
	assert.Nil(t, err)
	assert.Equal(t, []byte("two"), content)
}

func TestReportArchive_SameSecondAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)

	before := NewReportArchive(dir, u.AppService.LoggingClient())
	first, err := before.Save([]byte("pre-restart"), at)
	assert.Nil(t, err)
	assert.Equal(t, "drift_report_20260831_123045.html", first)

	// a fresh archive over the same directory has no counter state; the
	// existing file must survive
	after := NewReportArchive(dir, u.AppService.LoggingClient())
	second, err := after.Save([]byte("post-restart"), at)
	assert.Nil(t, err)
	assert.Equal(t, "drift_report_20260831_123045_1.html", second)

	content, err := after.Get(first)
	assert.Nil(t, err)
	assert.Equal(t, []byte("pre-restart"), content)
	content, err = after.Get(second)
	assert.Nil(t, err)
	assert.Equal(t, []byte("post-restart"), content)
}

func TestReportArchive_ListOrdersTwoDigitSuffixes(t *testing.T) {
	archive := newTestArchive(t)
	at := time.Date(2026, 8, 31, 12, 30, 45, 0, time.UTC)
	for i := 0; i < 11; i++ {
		_, err := archive.Save([]byte("report"), at)
		assert.Nil(t, err)
	}

	reports, err := archive.List()
	assert.Nil(t, err)
	assert.Equal(t, 11, len(reports))

	position := make(map[string]int, len(reports))
	for i, report := range reports {
		position[report.Name] = i
	}
	assert.Less(t, position["drift_report_20260831_123045_10.html"], position["drift_report_20260831_123045_9.html"])
	assert.Less(t, position["drift_report_20260831_123045_9.html"], position["drift_report_20260831_123045_2.html"])
}

func TestReportArchive_ListNewestFirst(t *testing.T) {
	archive := newTestArchive(t)
	base := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := archive.Save([]byte("report"), base.Add(time.Duration(i)*time.Second))
		assert.Nil(t, err)
	}

	reports, err := archive.List()
	assert.Nil(t, err)
	assert.Equal(t, 3, len(reports))
	assert.Equal(t, "drift_report_20260831_100002.html", reports[0].Name)
	assert.Equal(t, "drift_report_20260831_100000.html", reports[2].Name)
	for _, report := range reports {
		assert.Greater(t, report.SizeKB, 0.0)
		assert.Equal(t, "/reports/"+report.Name, report.Url)
	}
	assert.Equal(t, 3, archive.Count())
}

func TestReportArchive_ListEmptyDirectory(t *testing.T) {
	archive := NewReportArchive(filepath.Join(t.TempDir(), "never-created"), u.AppService.LoggingClient())
	reports, err := archive.List()
	assert.Nil(t, err)
	assert.Empty(t, reports)
	assert.Equal(t, 0, archive.Count())
}

func TestReportArchive_GetMissing(t *testing.T) {
	archive := newTestArchive(t)
	_, err := archive.Get("drift_report_19990101_000000.html")
	assert.NotNil(t, err)
	assert.True(t, err.IsErrorType(driftErrors.ErrorTypeNotFound))
}

func TestReportArchive_GetRejectsPathEscape(t *testing.T) {
	archive := newTestArchive(t)
	for _, name := range []string{"../secret", "a/b.html", "..", ""} {
		_, err := archive.Get(name)
		assert.NotNil(t, err, "name %q", name)
		assert.True(t, err.IsErrorType(driftErrors.ErrorTypeNotFound), "name %q", name)
	}
}

func TestRenderHTML(t *testing.T) {
	verdict := &monitor.DriftVerdict{
		RunId:          "run-1",
		Timestamp:      "2026-08-31T12:00:00Z",
		DatasetDrifted: true,
		DriftShare:     0.5,
		Threshold:      0.1,
		FeatureResults: map[string]monitor.FeatureDrift{
			"amount": {Score: 0.99, Drifted: true},
			"age":    {Score: 0.01, Drifted: false},
		},
		DriftedFeatures:  []string{"amount"},
		TotalFeatures:    2,
		DriftedCount:     1,
		ReferenceSamples: 100,
		CurrentSamples:   50,
	}

	html, err := RenderHTML(verdict)
	assert.NoError(t, err)
	body := string(html)
	assert.Contains(t, body, "DRIFT DETECTED")
	assert.Contains(t, body, "amount")
	assert.Contains(t, body, "age")
	assert.Contains(t, body, "run-1")
	// most drifted feature listed first
	assert.Less(t, strings.Index(body, "<td>amount</td>"), strings.Index(body, "<td>age</td>"))
}
