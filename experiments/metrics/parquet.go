package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// GameRow is the columnar form of a GameRecord.
type GameRow struct {
	ID         string `parquet:"id"`
	Config     int32  `parquet:"config"`
	Algorithm  string `parquet:"algorithm,dict"`
	Layout     string `parquet:"layout,dict"`
	Win        bool   `parquet:"win"`
	Lose       bool   `parquet:"lose"`
	Score      int32  `parquet:"score"`
	FoodLeft   int32  `parquet:"food_left"`
	StartUnix  int64  `parquet:"start_unix_ms"`
	DurationMs int64  `parquet:"duration_ms"`
	TotalMoves int32  `parquet:"total_moves"`
}

func toGameRow(record GameRecord) GameRow {
	return GameRow{
		ID:         record.ID.String(),
		Config:     int32(record.Config),
		Algorithm:  record.Algorithm,
		Layout:     record.Layout,
		Win:        record.Win,
		Lose:       record.Lose,
		Score:      int32(record.Score),
		FoodLeft:   int32(record.FoodLeft),
		StartUnix:  record.StartTime.UnixMilli(),
		DurationMs: record.Duration.Milliseconds(),
		TotalMoves: int32(record.TotalMoves),
	}
}

// WriteGameRecordsParquet archives records at outPath. The file is written
// next to its destination and renamed into place.
func WriteGameRecordsParquet(outPath string, records []GameRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	rows := make([]GameRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, toGameRow(record))
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "game_record_v1"),
	); err != nil {
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadGameRecordsParquet loads an archive written by WriteGameRecordsParquet.
func ReadGameRecordsParquet(path string) ([]GameRow, error) {
	rows, err := parquet.ReadFile[GameRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
