package sim

import (
	"context"
	"net"
	"strconv"

	"fremen-sim/internal/telemetry"

	gpb "github.com/GreptimeTeam/greptime-proto/go/greptime/v1"
	greptime "github.com/GreptimeTeam/greptimedb-ingester-go"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table"
	"github.com/GreptimeTeam/greptimedb-ingester-go/table/types"
)

// greptimeClient is the subset of the ingester client used by the
// writer, kept as an interface so tests can capture written tables.
type greptimeClient interface {
	Write(ctx context.Context, tables ...*table.Table) (*gpb.GreptimeResponse, error)
}

// GreptimeDBWriter writes combat telemetry to GreptimeDB via the
// ingester client. Tables are auto-created on first write.
type GreptimeDBWriter struct {
	client          greptimeClient
	engagementTable string
	stateTable      string
	alertTable      string
}

// NewGreptimeDBWriter connects to a GreptimeDB endpoint ("host:port")
// and prepares writers for the engagement, state, and alert tables.
func NewGreptimeDBWriter(endpoint, database string) (*GreptimeDBWriter, error) {
	host, portStr, err := net.SplitHostPort(endpoint)
	if err != nil {
		host = endpoint
		portStr = "4001"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 4001
	}

	cfg := greptime.NewConfig(host).WithPort(port).WithDatabase(database)
	client, err := greptime.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	return &GreptimeDBWriter{
		client:          client,
		engagementTable: telemetry.EngagementTableName,
		stateTable:      telemetry.StateTableName,
		alertTable:      telemetry.AlertTableName,
	}, nil
}

// WriteEngagement inserts a single engagement row.
func (w *GreptimeDBWriter) WriteEngagement(row telemetry.EngagementRow) error {
	return w.WriteEngagements([]telemetry.EngagementRow{row})
}

// WriteEngagements inserts multiple engagement rows in one call.
func (w *GreptimeDBWriter) WriteEngagements(rows []telemetry.EngagementRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.engagementTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("cluster_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("trooper_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("outpost_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("target_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("target_kind", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("hit", types.BOOLEAN); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("damage", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("distance_m", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(r.ClusterID, r.TrooperID, r.OutpostID,
			r.TargetID, r.TargetKind, r.Hit, int64(r.Damage), r.DistanceM,
			r.Timestamp); err != nil {
			return err
		}
	}

	_, err = w.client.Write(context.Background(), tbl)
	return err
}

// WriteState inserts a single trooper state row.
func (w *GreptimeDBWriter) WriteState(row telemetry.TrooperStateRow) error {
	return w.WriteStates([]telemetry.TrooperStateRow{row})
}

// WriteStates inserts multiple trooper state rows in one call. The
// position vector is flattened into x/y/z columns.
func (w *GreptimeDBWriter) WriteStates(rows []telemetry.TrooperStateRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.stateTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("cluster_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("trooper_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("outpost_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("state", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("health", types.INT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("x", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("y", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("z", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("facing", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(r.ClusterID, r.TrooperID, r.OutpostID,
			r.State, int64(r.Health), r.Position.X, r.Position.Y,
			r.Position.Z, r.Facing, r.Timestamp); err != nil {
			return err
		}
	}

	_, err = w.client.Write(context.Background(), tbl)
	return err
}

// WriteAlert inserts a single squad alert row.
func (w *GreptimeDBWriter) WriteAlert(row telemetry.AlertRow) error {
	return w.WriteAlerts([]telemetry.AlertRow{row})
}

// WriteAlerts inserts multiple squad alert rows in one call.
func (w *GreptimeDBWriter) WriteAlerts(rows []telemetry.AlertRow) error {
	if len(rows) == 0 {
		return nil
	}

	tbl, err := table.New(w.alertTable)
	if err != nil {
		return err
	}
	if err := tbl.AddTagColumn("cluster_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddTagColumn("alert_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("reporter_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("spotted_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("outpost_id", types.STRING); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("x", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddFieldColumn("z", types.FLOAT64); err != nil {
		return err
	}
	if err := tbl.AddTimestampColumn("ts", types.TIMESTAMP_MILLISECOND); err != nil {
		return err
	}

	for _, r := range rows {
		if err := tbl.AddRow(r.ClusterID, r.AlertID, r.ReporterID,
			r.SpottedID, r.OutpostID, r.Position.X, r.Position.Z,
			r.Timestamp); err != nil {
			return err
		}
	}

	_, err = w.client.Write(context.Background(), tbl)
	return err
}
