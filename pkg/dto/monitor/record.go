/*******************************************************************************
* Contributors: BMC Helix, Inc.
*
* (c) Copyright 2020-2025 BMC Helix, Inc.

* SPDX-License-Identifier: Apache-2.0
*******************************************************************************/

package monitor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"driftwatch/common/client"
	driftErrors "driftwatch/common/errors"
)

type FieldKind string

const (
	FieldKindNumber FieldKind = "number"
	FieldKindString FieldKind = "string"
	FieldKindNull   FieldKind = "null"
)

// FieldValue is the value of one key in a captured payload. Capture accepts
// arbitrary-keyed maps, so the value is an explicit tagged union rather than
// a raw interface{}; unknown shapes (arrays, objects) are rejected at the
// boundary.
type FieldValue struct {
	Kind   FieldKind
	Number float64
	Str    string
}

func NumberValue(v float64) FieldValue {
	return FieldValue{Kind: FieldKindNumber, Number: v}
}

func StringValue(s string) FieldValue {
	return FieldValue{Kind: FieldKindString, Str: s}
}

func NullValue() FieldValue {
	return FieldValue{Kind: FieldKindNull}
}

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case nil:
		*v = NullValue()
	case float64:
		*v = NumberValue(val)
	case bool:
		if val {
			*v = NumberValue(1)
		} else {
			*v = NumberValue(0)
		}
	case string:
		// strings that parse as numbers are coerced, others kept as labels
		if f, err := cast.ToFloat64E(val); err == nil {
			*v = NumberValue(f)
		} else {
			*v = StringValue(val)
		}
	default:
		return fmt.Errorf("unsupported value shape %T", raw)
	}
	return nil
}

func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldKindNumber:
		return json.Marshal(v.Number)
	case FieldKindString:
		return json.Marshal(v.Str)
	default:
		return []byte("null"), nil
	}
}

// AsNumber returns the numeric value and whether one is available
func (v FieldValue) AsNumber() (float64, bool) {
	if v.Kind != FieldKindNumber {
		return 0, false
	}
	return v.Number, true
}

// ProductionRecord is one captured inference observation. Immutable once buffered.
type ProductionRecord struct {
	Features     map[string]FieldValue `json:"features"`
	Prediction   *float64              `json:"prediction,omitempty"`
	Timestamp    string                `json:"timestamp,omitempty"`
	ModelVersion string                `json:"model_version,omitempty"`
}

// NewProductionRecordFromFlatMap splits an arbitrary-keyed capture payload into
// features and the reserved metadata keys. Fails with IngestionError when the
// record carries no usable feature at all; a bad record never aborts the batch.
func NewProductionRecordFromFlatMap(flat map[string]FieldValue) (ProductionRecord, driftErrors.DriftError) {
	record := ProductionRecord{
		Features: make(map[string]FieldValue, len(flat)),
	}
	for key, value := range flat {
		switch key {
		case client.RecordKeyPrediction:
			if num, ok := value.AsNumber(); ok {
				record.Prediction = &num
			}
		case client.RecordKeyTimestamp:
			if value.Kind == FieldKindString {
				record.Timestamp = value.Str
			}
		case client.RecordKeyModelVersion:
			if value.Kind == FieldKindString {
				record.ModelVersion = value.Str
			} else if num, ok := value.AsNumber(); ok {
				record.ModelVersion = cast.ToString(num)
			}
		default:
			record.Features[key] = value
		}
	}
	if len(record.Features) == 0 {
		return ProductionRecord{}, driftErrors.NewCommonDriftError(
			driftErrors.ErrorTypeIngestion,
			"record contains no feature values",
		)
	}
	return record, nil
}

// Stamp assigns the server-side capture time when the caller did not provide one
func (r *ProductionRecord) Stamp(now time.Time) {
	if r.Timestamp == "" {
		r.Timestamp = now.Format(time.RFC3339)
	}
}
