package pipeline

import (
	"os"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"rampcheck"
)

type canonicalParquetRow struct {
	ElapsedS   float64 `parquet:"name=elapsed_s, type=DOUBLE"`
	PowerW     float64 `parquet:"name=power_w, type=DOUBLE"`
	CadenceRPM float64 `parquet:"name=cadence_rpm, type=DOUBLE"`
}

func marshalCanonicalParquet(samples []CanonicalSample) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(canonicalParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, s := range samples {
		row := canonicalParquetRow{
			ElapsedS:   s.ElapsedS,
			PowerW:     valueOrNaN(s.PowerW),
			CadenceRPM: valueOrNaN(s.CadenceRPM),
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func writeCanonicalParquet(path string, samples []CanonicalSample) error {
	data, err := marshalCanonicalParquet(samples)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// loadParquetTable reads a canonical sample parquet file back into a
// validator table under the default column names.
func loadParquetTable(path string) (*rampcheck.Table, error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, err
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(canonicalParquetRow), 4)
	if err != nil {
		return nil, err
	}
	defer pr.ReadStop()

	rows := make([]canonicalParquetRow, pr.GetNumRows())
	if err := pr.Read(&rows); err != nil {
		return nil, err
	}

	times := make([]float64, len(rows))
	power := make([]float64, len(rows))
	cadence := make([]float64, len(rows))
	for i, row := range rows {
		times[i] = row.ElapsedS
		power[i] = row.PowerW
		cadence[i] = row.CadenceRPM
	}

	table := rampcheck.NewTable()
	table.AddColumn("time", times)
	table.AddColumn("watts", power)
	table.AddColumn("cadence", cadence)
	return table, nil
}
