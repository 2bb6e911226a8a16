package repositories

import (
	"errors"

	"gorm.io/gorm"

	"fairway_backend/internal/models"
)

var ErrCourseNotFound = errors.New("course not found")

type CourseRepository interface {
	Create(course *models.Course) error
	FindByID(id string) (*models.Course, error)
	FindAll() ([]models.Course, error)
	// FindHolePars returns hole number -> par. Holes without a definition
	// are simply absent from the map.
	FindHolePars(courseID string) (map[int]int, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) FindByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.Preload("Holes", func(db *gorm.DB) *gorm.DB {
		return db.Order("hole_number ASC")
	}).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll() ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Order("name ASC").Find(&courses).Error
	return courses, err
}

func (r *courseRepository) FindHolePars(courseID string) (map[int]int, error) {
	var holes []models.CourseHole
	if err := r.db.Where("course_id = ?", courseID).Find(&holes).Error; err != nil {
		return nil, err
	}

	pars := make(map[int]int, len(holes))
	for _, h := range holes {
		pars[h.HoleNumber] = h.Par
	}
	return pars, nil
}
