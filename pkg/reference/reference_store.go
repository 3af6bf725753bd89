/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package reference

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/edgexfoundry/go-mod-core-contracts/v3/clients/logger"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"

	driftErrors "driftwatch/common/errors"
	"driftwatch/pkg/dto/monitor"
)

const (
	ReferenceFileName = "reference_data.csv"
	MetadataFileName  = "metadata.json"

	// numeric columns with at most this many distinct baseline values are
	// treated as categorical and tested by frequency comparison
	categoricalCardinalityLimit = 5
)

type ReferenceStoreInterface interface {
	Upload(rows []map[string]monitor.FieldValue, featureNames []string, description string) (*monitor.ReferenceMetadata, driftErrors.DriftError)
	Current() *monitor.ReferenceDataset
	LoadFromDisk() bool
}

// ReferenceStore owns the single current baseline dataset. The dataset is
// replaced wholesale on upload and persisted as a CSV table with a JSON
// metadata sidecar so it survives restarts.
type ReferenceStore struct {
	mu      sync.RWMutex
	current *monitor.ReferenceDataset
	baseDir string
	lc      logger.LoggingClient
}

func NewReferenceStore(baseDir string, lc logger.LoggingClient) *ReferenceStore {
	return &ReferenceStore{
		baseDir: baseDir,
		lc:      lc,
	}
}

// Upload validates, persists and atomically swaps in the new baseline.
// An in-flight analysis keeps seeing the old dataset in full.
func (s *ReferenceStore) Upload(
	rows []map[string]monitor.FieldValue,
	featureNames []string,
	description string,
) (*monitor.ReferenceMetadata, driftErrors.DriftError) {
	if len(rows) == 0 {
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeEmptyDataset,
			"empty dataset provided",
		)
	}

	resolvedNames := resolveFeatureNames(rows, featureNames)
	records := make([]map[string]float64, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]float64, len(resolvedNames))
		for _, name := range resolvedNames {
			if value, ok := row[name]; ok {
				if num, ok := value.AsNumber(); ok {
					record[name] = num
				}
			}
		}
		records = append(records, record)
	}

	dataset := &monitor.ReferenceDataset{
		Records:      records,
		FeatureNames: resolvedNames,
		FeatureTypes: inferFeatureTypes(records, resolvedNames),
	}
	if description == "" {
		description = "Reference dataset"
	}
	dataset.Metadata = monitor.ReferenceMetadata{
		Description:  description,
		UploadedAt:   time.Now().Format(time.RFC3339),
		Samples:      len(records),
		Features:     resolvedNames,
		FeatureTypes: dataset.FeatureTypes,
	}

	if err := s.persist(dataset); err != nil {
		s.lc.Errorf("Failed to persist reference data: %v", err)
		return nil, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypePersistence,
			fmt.Sprintf("failed to persist reference data: %v", err),
		)
	}

	s.mu.Lock()
	s.current = dataset
	s.mu.Unlock()
	s.lc.Infof("Saved reference data: %d samples, %d features", len(records), len(resolvedNames))

	return &dataset.Metadata, nil
}

// Current returns the active baseline, nil until the first successful upload
// or disk load
func (s *ReferenceStore) Current() *monitor.ReferenceDataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LoadFromDisk attempts to restore a previously persisted baseline. A parse
// failure is logged and treated as absence of data, never as a fatal error.
func (s *ReferenceStore) LoadFromDisk() bool {
	referenceFile := filepath.Join(s.baseDir, ReferenceFileName)
	metadataFile := filepath.Join(s.baseDir, MetadataFileName)

	if _, err := os.Stat(referenceFile); err != nil {
		s.lc.Info("No persisted reference data found")
		return false
	}

	dataset, err := readReferenceCSV(referenceFile)
	if err != nil {
		s.lc.Errorf("Failed to load reference data, starting without a baseline: %v", err)
		return false
	}

	metadataBytes, err := os.ReadFile(metadataFile)
	if err == nil {
		var metadata monitor.ReferenceMetadata
		if err = json.Unmarshal(metadataBytes, &metadata); err != nil {
			s.lc.Warnf("Failed to parse reference metadata, regenerating: %v", err)
		} else {
			dataset.Metadata = metadata
			if len(metadata.FeatureTypes) == len(dataset.FeatureNames) {
				dataset.FeatureTypes = metadata.FeatureTypes
			}
		}
	}
	if dataset.FeatureTypes == nil {
		dataset.FeatureTypes = inferFeatureTypes(dataset.Records, dataset.FeatureNames)
	}
	if dataset.Metadata.Samples == 0 {
		dataset.Metadata = monitor.ReferenceMetadata{
			Description:  "Reference dataset",
			Samples:      len(dataset.Records),
			Features:     dataset.FeatureNames,
			FeatureTypes: dataset.FeatureTypes,
		}
	}

	s.mu.Lock()
	s.current = dataset
	s.mu.Unlock()
	s.lc.Infof("Loaded reference data: %d samples", len(dataset.Records))
	return true
}

func (s *ReferenceStore) persist(dataset *monitor.ReferenceDataset) error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return errors.Wrap(err, "creating reference directory")
	}

	referenceFile := filepath.Join(s.baseDir, ReferenceFileName)
	file, err := os.Create(referenceFile)
	if err != nil {
		return errors.Wrap(err, "creating reference file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err = writer.Write(dataset.FeatureNames); err != nil {
		return errors.Wrap(err, "writing reference header")
	}
	row := make([]string, len(dataset.FeatureNames))
	for _, record := range dataset.Records {
		for i, name := range dataset.FeatureNames {
			if value, ok := record[name]; ok {
				row[i] = strconv.FormatFloat(value, 'g', -1, 64)
			} else {
				row[i] = ""
			}
		}
		if err = writer.Write(row); err != nil {
			return errors.Wrap(err, "writing reference row")
		}
	}
	writer.Flush()
	if err = writer.Error(); err != nil {
		return errors.Wrap(err, "flushing reference file")
	}

	metadataBytes, err := json.MarshalIndent(dataset.Metadata, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling reference metadata")
	}
	metadataFile := filepath.Join(s.baseDir, MetadataFileName)
	if err = os.WriteFile(metadataFile, metadataBytes, 0644); err != nil {
		return errors.Wrap(err, "writing reference metadata")
	}
	return nil
}

func readReferenceCSV(fileName string) (*monitor.ReferenceDataset, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, errors.New("reference file has no data rows")
	}

	featureNames := rows[0]
	records := make([]map[string]float64, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]float64, len(featureNames))
		for i, name := range featureNames {
			if i >= len(row) || row[i] == "" {
				continue
			}
			value, err := strconv.ParseFloat(row[i], 64)
			if err != nil {
				return nil, errors.Wrapf(err, "parsing value for column %s", name)
			}
			record[name] = value
		}
		records = append(records, record)
	}

	return &monitor.ReferenceDataset{
		Records:      records,
		FeatureNames: featureNames,
	}, nil
}

// resolveFeatureNames prefers the declared list, otherwise infers the set from
// the first record's keys in sorted order
func resolveFeatureNames(rows []map[string]monitor.FieldValue, declared []string) []string {
	if len(declared) > 0 {
		return declared
	}
	names := maps.Keys(rows[0])
	sort.Strings(names)
	return names
}

func inferFeatureTypes(records []map[string]float64, featureNames []string) map[string]monitor.FeatureType {
	types := make(map[string]monitor.FeatureType, len(featureNames))
	for _, name := range featureNames {
		distinct := make(map[float64]struct{})
		for _, record := range records {
			if value, ok := record[name]; ok {
				distinct[value] = struct{}{}
			}
			if len(distinct) > categoricalCardinalityLimit {
				break
			}
		}
		if len(distinct) > 0 && len(distinct) <= categoricalCardinalityLimit {
			types[name] = monitor.FeatureTypeCategorical
		} else {
			types[name] = monitor.FeatureTypeContinuous
		}
	}
	return types
}
