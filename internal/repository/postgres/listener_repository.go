package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fairTune/business/listener"
	"fairTune/business/recommender"
	"fairTune/domain"
)

type ListenerRepository struct {
	DB *gorm.DB
}

var _ listener.ListenerRepository = (*ListenerRepository)(nil)
var _ recommender.ListenerDirectory = (*ListenerRepository)(nil)

func NewListenerRepository(db *gorm.DB) *ListenerRepository {
	return &ListenerRepository{
		DB: db,
	}
}

func (r *ListenerRepository) Create(ctx context.Context, listener *domain.Listener) error {
	if err := r.DB.WithContext(ctx).Create(&listener).Error; err != nil {
		return err
	}

	return nil
}

func (r *ListenerRepository) FindByID(ctx context.Context, id uint) (domain.Listener, error) {
	var listener domain.Listener

	err := r.DB.WithContext(ctx).First(&listener, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Listener{}, errors.New("listener not found")
		}
		return domain.Listener{}, err
	}

	return listener, nil
}

func (r *ListenerRepository) FindByEmail(ctx context.Context, email string) (domain.Listener, error) {
	var listener domain.Listener

	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&listener).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Listener{}, errors.New("listener not found")
		}
		return domain.Listener{}, err
	}

	return listener, nil
}

func (r *ListenerRepository) SetCleanOnly(ctx context.Context, id uint, cleanOnly bool) error {
	result := r.DB.WithContext(ctx).
		Model(&domain.Listener{}).
		Where("id = ?", id).
		Update("clean_only", cleanOnly)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("listener not found")
	}

	return nil
}
