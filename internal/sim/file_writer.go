package sim

import (
	"encoding/json"
	"os"

	"fremen-sim/internal/telemetry"
)

// FileWriter writes combat events to JSONL files.
type FileWriter struct {
	engFile   *os.File
	alertFile *os.File
	stateFile *os.File
	engEnc    *json.Encoder
	alertEnc  *json.Encoder
	stateEnc  *json.Encoder
}

// NewFileWriter creates a FileWriter. alertPath or statePath may be
// empty to skip those logs.
func NewFileWriter(engagementPath, alertPath, statePath string) (*FileWriter, error) {
	ef, err := os.Create(engagementPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{engFile: ef, engEnc: json.NewEncoder(ef)}
	if alertPath != "" {
		af, err := os.Create(alertPath)
		if err != nil {
			ef.Close()
			return nil, err
		}
		fw.alertFile = af
		fw.alertEnc = json.NewEncoder(af)
	}
	if statePath != "" {
		sf, err := os.Create(statePath)
		if err != nil {
			if fw.alertFile != nil {
				fw.alertFile.Close()
			}
			ef.Close()
			return nil, err
		}
		fw.stateFile = sf
		fw.stateEnc = json.NewEncoder(sf)
	}
	return fw, nil
}

// WriteEngagement logs a single engagement row.
func (f *FileWriter) WriteEngagement(row telemetry.EngagementRow) error {
	return f.engEnc.Encode(row)
}

// WriteEngagements logs multiple engagement rows.
func (f *FileWriter) WriteEngagements(rows []telemetry.EngagementRow) error {
	for _, r := range rows {
		if err := f.WriteEngagement(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteAlert logs a squad alert row when alert logging is enabled.
func (f *FileWriter) WriteAlert(row telemetry.AlertRow) error {
	if f.alertEnc == nil {
		return nil
	}
	return f.alertEnc.Encode(row)
}

// WriteAlerts logs multiple squad alert rows.
func (f *FileWriter) WriteAlerts(rows []telemetry.AlertRow) error {
	for _, r := range rows {
		if err := f.WriteAlert(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteState logs a trooper state row when state logging is enabled.
func (f *FileWriter) WriteState(row telemetry.TrooperStateRow) error {
	if f.stateEnc == nil {
		return nil
	}
	return f.stateEnc.Encode(row)
}

// WriteStates logs multiple trooper state rows.
func (f *FileWriter) WriteStates(rows []telemetry.TrooperStateRow) error {
	for _, r := range rows {
		if err := f.WriteState(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all underlying files.
func (f *FileWriter) Close() error {
	err := f.engFile.Close()
	if f.alertFile != nil {
		if cerr := f.alertFile.Close(); err == nil {
			err = cerr
		}
	}
	if f.stateFile != nil {
		if cerr := f.stateFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
