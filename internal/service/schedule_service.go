package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/timetable_bot/internal/model"
	"go.uber.org/zap"
)

// DefaultStorageKey ключ, под которым хранится весь список занятий
const DefaultStorageKey = "lectures"

// BlobStorage хранилище одного сериализованного значения по ключу
type BlobStorage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// LectureInput поля формы добавления занятия
type LectureInput struct {
	Name      string
	Classroom string
	Day       model.Weekday
	StartTime string
	EndTime   string
}

// ScheduleService владеет списком занятий и его сохранением.
// Все изменения идут через Add/Remove, после каждого список сохраняется целиком.
type ScheduleService struct {
	mu       sync.Mutex
	storage  BlobStorage
	key      string
	lectures []*model.Lecture
	lastID   int64
	now      func() time.Time
	logger   *zap.Logger
}

func NewScheduleService(storage BlobStorage, key string, logger *zap.Logger) *ScheduleService {
	if key == "" {
		key = DefaultStorageKey
	}
	return &ScheduleService{
		storage: storage,
		key:     key,
		now:     time.Now,
		logger:  logger,
	}
}

// LoadAll загружает список из хранилища.
// Отсутствующие или повреждённые данные дают пустой список, ошибка не возвращается.
func (s *ScheduleService) LoadAll(ctx context.Context) []*model.Lecture {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lectures = s.readStored(ctx)
	s.lastID = 0
	for _, l := range s.lectures {
		if l.ID > s.lastID {
			s.lastID = l.ID
		}
	}

	s.logger.Info("Schedule loaded",
		zap.String("key", s.key),
		zap.Int("lectures", len(s.lectures)))

	return s.snapshot()
}

func (s *ScheduleService) readStored(ctx context.Context) []*model.Lecture {
	data, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("Failed to read schedule, starting empty",
			zap.String("key", s.key),
			zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var lectures []*model.Lecture
	if err := json.Unmarshal(data, &lectures); err != nil {
		s.logger.Warn("Stored schedule is corrupt, starting empty",
			zap.String("key", s.key),
			zap.Error(err))
		return nil
	}

	// null-элементы массива пропускаем
	result := lectures[:0]
	for _, l := range lectures {
		if l != nil {
			result = append(result, l)
		}
	}
	return result
}

// Add создаёт занятие с новым ID, добавляет в конец и сохраняет список.
// Поля не проверяются: пустое название тоже допустимо.
func (s *ScheduleService) Add(ctx context.Context, input LectureInput) (*model.Lecture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lecture := &model.Lecture{
		ID:        s.nextID(),
		Name:      input.Name,
		Classroom: input.Classroom,
		Day:       input.Day,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
	}
	s.lectures = append(s.lectures, lecture)

	s.logger.Info("Lecture added",
		zap.Int64("lecture_id", lecture.ID),
		zap.String("name", lecture.Name),
		zap.String("day", string(lecture.Day)),
		zap.String("start", lecture.StartTime),
		zap.String("end", lecture.EndTime))

	if err := s.persistLocked(ctx); err != nil {
		return copyLecture(lecture), err
	}

	return copyLecture(lecture), nil
}

// nextID ID на основе времени в миллисекундах, строго возрастающий
func (s *ScheduleService) nextID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Remove удаляет занятие по ID. Отсутствующий ID не ошибка.
// Возвращает true если занятие было удалено.
func (s *ScheduleService) Remove(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	kept := make([]*model.Lecture, 0, len(s.lectures))
	for _, l := range s.lectures {
		if l.ID == id && !removed {
			removed = true
			continue
		}
		kept = append(kept, l)
	}
	s.lectures = kept

	if removed {
		s.logger.Info("Lecture removed", zap.Int64("lecture_id", id))
	} else {
		s.logger.Debug("Lecture to remove not found", zap.Int64("lecture_id", id))
	}

	return removed, s.persistLocked(ctx)
}

// Persist сохраняет весь список одним значением
func (s *ScheduleService) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

// persistLocked вызывается под s.mu
func (s *ScheduleService) persistLocked(ctx context.Context) error {
	lectures := s.lectures
	if lectures == nil {
		lectures = []*model.Lecture{}
	}

	data, err := json.Marshal(lectures)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	if err := s.storage.Put(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist schedule",
			zap.String("key", s.key),
			zap.Int("lectures", len(lectures)),
			zap.Error(err))
		return fmt.Errorf("persist schedule: %w", err)
	}

	return nil
}

// List копия текущего списка в порядке добавления
func (s *ScheduleService) List() []*model.Lecture {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Get получает занятие по ID, nil если не найдено
func (s *ScheduleService) Get(id int64) *model.Lecture {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.lectures {
		if l.ID == id {
			return copyLecture(l)
		}
	}
	return nil
}

// Count количество занятий
func (s *ScheduleService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lectures)
}

func (s *ScheduleService) snapshot() []*model.Lecture {
	result := make([]*model.Lecture, len(s.lectures))
	for i, l := range s.lectures {
		result[i] = copyLecture(l)
	}
	return result
}

func copyLecture(l *model.Lecture) *model.Lecture {
	c := *l
	return &c
}
