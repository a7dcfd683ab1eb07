package store

import (
	"errors"

	"paisa/expense-api/internal/model"

	"gorm.io/gorm"
)

// Expenses is the owner-scoped expense store. Every query carries a
// user_id filter, so another owner's record ID behaves exactly like a
// nonexistent one.
type Expenses struct {
	db *gorm.DB
}

func NewExpenses(db *gorm.DB) *Expenses {
	return &Expenses{db: db}
}

func (s *Expenses) Create(e *model.Expense) error {
	return s.db.Create(e).Error
}

func (s *Expenses) ListByOwner(userID string) ([]model.Expense, error) {
	entries := []model.Expense{}
	err := s.db.
		Where("user_id = ?", userID).
		Order("date desc").
		Find(&entries).
		Error
	return entries, err
}

func (s *Expenses) FindOwned(userID, expenseID string) (*model.Expense, error) {
	var e model.Expense
	err := s.db.
		Where("id = ? AND user_id = ?", expenseID, userID).
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (s *Expenses) Update(e *model.Expense) error {
	return s.db.Save(e).Error
}

// DeleteOwned removes an expense only if the requester owns it.
// Deleting someone else's ID reports ErrNotFound, same as a missing row.
func (s *Expenses) DeleteOwned(userID, expenseID string) error {
	res := s.db.
		Where("id = ? AND user_id = ?", expenseID, userID).
		Delete(&model.Expense{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
