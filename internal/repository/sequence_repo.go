package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RathodVijay9524/School-MGMTSaaS-sub004/internal/model"
)

// SequenceRepository 证件编号发号接口
type SequenceRepository interface {
	// Next 取 (docType, year) 下一个序号，事务内行锁串行化发号
	Next(ctx context.Context, docType string, year int) (int, error)
}

type sequenceRepo struct {
	db *gorm.DB
}

// NewSequenceRepo 创建 SequenceRepository 实例
func NewSequenceRepo(db *gorm.DB) SequenceRepository {
	return &sequenceRepo{db: db}
}

func (r *sequenceRepo) Next(ctx context.Context, docType string, year int) (int, error) {
	var value int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 序列行不存在时先补插，已存在则忽略
		seed := model.DocumentSequence{DocType: docType, Year: year, NextValue: 1}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return err
		}

		var row model.DocumentSequence
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doc_type = ? AND year = ?", docType, year).
			First(&row).Error; err != nil {
			return err
		}

		value = row.NextValue
		return tx.Model(&model.DocumentSequence{}).
			Where("doc_type = ? AND year = ?", docType, year).
			Update("next_value", row.NextValue+1).Error
	})
	return value, err
}
