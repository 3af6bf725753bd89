/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	driftErrors "driftwatch/common/errors"
)

const (
	reportPrefix    = "drift_report_"
	reportExtension = ".html"

	contentCacheTTL     = 10 * time.Minute
	contentCacheCleanup = 30 * time.Minute
)

// ReportInfo describes one archived artifact in a listing
type ReportInfo struct {
	Name    string  `json:"filename"`
	Created string  `json:"created"`
	SizeKB  float64 `json:"size_kb"`
	Url     string  `json:"url"`
}

type ReportArchiveInterface interface {
	Save(html []byte, at time.Time) (string, driftErrors.DriftError)
	List() ([]ReportInfo, driftErrors.DriftError)
	Get(name string) ([]byte, driftErrors.DriftError)
	Count() int
}

// ReportArchive persists one immutable artifact per analysis run. Names derive
// from the analysis timestamp at second resolution; runs completing within the
// same second get a monotonic counter suffix so names stay unique. Artifacts
// are immutable, so content reads are cached.
type ReportArchive struct {
	mu         sync.Mutex
	baseDir    string
	lastStamp  string
	stampCount int
	content    *cache.Cache
	lc         logger.LoggingClient
}

func NewReportArchive(baseDir string, lc logger.LoggingClient) *ReportArchive {
	return &ReportArchive{
		baseDir: baseDir,
		content: cache.New(contentCacheTTL, contentCacheCleanup),
		lc:      lc,
	}
}

func (a *ReportArchive) Save(html []byte, at time.Time) (string, driftErrors.DriftError) {
	if err := os.MkdirAll(a.baseDir, 0755); err != nil {
		return "", driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypePersistence,
			fmt.Sprintf("failed to create reports directory: %v", err),
		)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for {
		name := a.nextNameLocked(at)
		// O_EXCL guards against a same-second report persisted before a restart;
		// the counter state is in-memory only
		file, err := os.OpenFile(filepath.Join(a.baseDir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			a.lc.Errorf("Failed to write report %s: %v", name, err)
			return "", driftErrors.NewCommonDriftError(
				driftErrors.ErrorTypePersistence,
				fmt.Sprintf("failed to write report: %v", err),
			)
		}
		_, err = file.Write(html)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			a.lc.Errorf("Failed to write report %s: %v", name, err)
			return "", driftErrors.NewCommonDriftError(
				driftErrors.ErrorTypePersistence,
				fmt.Sprintf("failed to write report: %v", err),
			)
		}
		a.lc.Infof("Report saved: %s", name)
		return name, nil
	}
}

func (a *ReportArchive) nextNameLocked(at time.Time) string {
	stamp := at.Format("20060102_150405")
	if stamp == a.lastStamp {
		a.stampCount++
		return fmt.Sprintf("%s%s_%d%s", reportPrefix, stamp, a.stampCount, reportExtension)
	}
	a.lastStamp = stamp
	a.stampCount = 0
	return reportPrefix + stamp + reportExtension
}

// List returns the archived artifacts newest-first
func (a *ReportArchive) List() ([]ReportInfo, driftErrors.DriftError) {
	entries, err := os.ReadDir(a.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ReportInfo{}, nil
		}
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypePersistence,
			fmt.Sprintf("failed to list reports: %v", err),
		)
	}

	reports := make([]ReportInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), reportExtension) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Name:    entry.Name(),
			Created: info.ModTime().Format(time.RFC3339),
			SizeKB:  float64(info.Size()) / 1024,
			Url:     "/reports/" + entry.Name(),
		})
	}
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Created != reports[j].Created {
			return reports[i].Created > reports[j].Created
		}
		// the counter suffix breaks same-second ties; compared numerically so
		// _10 sorts after _9
		return reportOrdinal(reports[i].Name) > reportOrdinal(reports[j].Name)
	})
	return reports, nil
}

// reportOrdinal extracts the same-second counter suffix, 0 for the base name
func reportOrdinal(name string) int {
	base := strings.TrimSuffix(strings.TrimPrefix(name, reportPrefix), reportExtension)
	const stampLen = len("20060102_150405")
	if len(base) > stampLen+1 && base[stampLen] == '_' {
		if n, err := strconv.Atoi(base[stampLen+1:]); err == nil {
			return n
		}
	}
	return 0
}

func (a *ReportArchive) Get(name string) ([]byte, driftErrors.DriftError) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if cached, found := a.content.Get(name); found {
		return cached.([]byte), nil
	}

	content, err := os.ReadFile(filepath.Join(a.baseDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, driftErrors.NewCommonDriftError(
				driftErrors.ErrorTypeNotFound,
				fmt.Sprintf("report %s not found", name),
			)
		}
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypePersistence,
			errors.Wrap(err, "reading report").Error(),
		)
	}
	a.content.Set(name, content, cache.DefaultExpiration)
	return content, nil
}

func (a *ReportArchive) Count() int {
	reports, err := a.List()
	if err != nil {
		return 0
	}
	return len(reports)
}

// validateName rejects names that could escape the reports directory
func validateName(name string) driftErrors.DriftError {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeNotFound,
			fmt.Sprintf("report %s not found", name),
		)
	}
	return nil
}
