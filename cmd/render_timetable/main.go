package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Freeeeeet/timetable_bot/internal/app"
	"github.com/Freeeeeet/timetable_bot/internal/config"
	"github.com/Freeeeeet/timetable_bot/internal/grid"
	"github.com/Freeeeeet/timetable_bot/internal/model"
	"github.com/Freeeeeet/timetable_bot/internal/render"
	"github.com/Freeeeeet/timetable_bot/internal/service"
	"go.uber.org/zap"
)

// Рендерит сохранённое расписание в файлы без запуска бота
func main() {
	out := flag.String("out", "timetable.png", "PNG output path (empty to skip)")
	xlsxPath := flag.String("xlsx", "", "XLSX output path")
	csvPath := flag.String("csv", "", "CSV output path")
	importPath := flag.String("import", "", "CSV file with lectures to add before rendering")
	demo := flag.Bool("demo", false, "render sample lectures from memory instead of configured storage")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *demo {
		cfg.StorageBackend = config.StorageMemory
	}

	logger := app.NewLogger(cfg)
	defer logger.Sync()

	ctx := context.Background()

	storage, err := app.OpenStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer storage.Close()

	schedule := service.NewScheduleService(storage.Blob, cfg.StorageKey, logger)
	schedule.LoadAll(ctx)

	if *demo {
		for _, in := range demoLectures() {
			if _, err := schedule.Add(ctx, in); err != nil {
				logger.Fatal("Failed to add demo lecture", zap.Error(err))
			}
		}
	}

	if *importPath != "" {
		if err := importCSV(ctx, schedule, *importPath, logger); err != nil {
			logger.Fatal("Failed to import lectures", zap.String("path", *importPath), zap.Error(err))
		}
	}

	lectures := schedule.List()
	g := grid.Build(lectures)

	if *out != "" {
		renderer, err := render.NewImageRenderer(cfg.FontPath)
		if err != nil {
			logger.Fatal("Failed to load font", zap.Error(err))
		}
		data, err := renderer.Render(g, lectures)
		if err != nil {
			logger.Fatal("Failed to render image", zap.Error(err))
		}
		writeFile(*out, data, logger)
	}

	if *xlsxPath != "" {
		data, err := render.XLSX(g, lectures)
		if err != nil {
			logger.Fatal("Failed to build xlsx", zap.Error(err))
		}
		writeFile(*xlsxPath, data, logger)
	}

	if *csvPath != "" {
		data, err := render.CSV(lectures)
		if err != nil {
			logger.Fatal("Failed to build csv", zap.Error(err))
		}
		writeFile(*csvPath, data, logger)
	}

	logger.Info("Timetable rendered",
		zap.Int("lectures", len(lectures)),
		zap.Int("occupied_cells", g.OccupiedCount()))
}

func importCSV(ctx context.Context, schedule *service.ScheduleService, path string, logger *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	rows, err := render.ParseCSV(data)
	if err != nil {
		return err
	}

	for _, l := range rows {
		if _, err := schedule.Add(ctx, service.LectureInput{
			Name:      l.Name,
			Classroom: l.Classroom,
			Day:       l.Day,
			StartTime: l.StartTime,
			EndTime:   l.EndTime,
		}); err != nil {
			return err
		}
	}

	logger.Info("Lectures imported", zap.Int("count", len(rows)))
	return nil
}

func writeFile(path string, data []byte, logger *zap.Logger) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Fatal("Failed to write file", zap.String("path", path), zap.Error(err))
	}
	logger.Info("File written", zap.String("path", path), zap.Int("bytes", len(data)))
}

func demoLectures() []service.LectureInput {
	return []service.LectureInput{
		{Name: "Algorithms", Classroom: "Bldg A-101", Day: model.Monday, StartTime: "09:00", EndTime: "10:30"},
		{Name: "Databases", Classroom: "B-204", Day: model.Monday, StartTime: "10:00", EndTime: "12:00"},
		{Name: "Networks", Day: model.Tuesday, StartTime: "13:00", EndTime: "14:30"},
		{Name: "Operating Systems", Classroom: "C-310", Day: model.Wednesday, StartTime: "15:00", EndTime: "17:00"},
		{Name: "Seminar", Classroom: "Hall", Day: model.Friday, StartTime: "11:30", EndTime: "12:30"},
	}
}
