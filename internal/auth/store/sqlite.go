package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/siglink-dev/siglink-gate/pkg/schema"
)

// authRow is the gorm model backing the sqlite driver.
type authRow struct {
	Signature      string `gorm:"column:signature;primaryKey"`
	SenderPubkey   string `gorm:"column:sender_pubkey;not null"`
	SenderSigner   bool   `gorm:"column:sender_signer"`
	SenderSource   string `gorm:"column:sender_source"`
	SenderWritable bool   `gorm:"column:sender_writable"`
	Authenticated  bool   `gorm:"column:authenticated;not null"`
}

func (authRow) TableName() string { return "auth_records" }

func (r authRow) record() schema.AuthRecord {
	return schema.AuthRecord{
		Signature: r.Signature,
		SenderWallet: schema.SenderWallet{
			Pubkey:   r.SenderPubkey,
			Signer:   r.SenderSigner,
			Source:   r.SenderSource,
			Writable: r.SenderWritable,
		},
		Authenticated: r.Authenticated,
	}
}

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLite opens (or creates) the database at cfg.DSN and migrates the
// auth_records table.
func NewSQLite(cfg SQLiteConfig) (Store, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite: %v", ErrUnavailable, err)
	}
	if err := db.AutoMigrate(&authRow{}); err != nil {
		return nil, fmt.Errorf("migrate auth_records: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Put(ctx context.Context, rec schema.AuthRecord) error {
	if rec.Signature == "" {
		return ErrEmptySignature
	}
	row := authRow{
		Signature:      rec.Signature,
		SenderPubkey:   rec.SenderWallet.Pubkey,
		SenderSigner:   rec.SenderWallet.Signer,
		SenderSource:   rec.SenderWallet.Source,
		SenderWritable: rec.SenderWallet.Writable,
		Authenticated:  rec.Authenticated,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, signature string) (schema.AuthRecord, error) {
	var row authRow
	err := s.db.WithContext(ctx).Where("signature = ?", signature).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schema.AuthRecord{}, ErrRecordNotFound
	}
	if err != nil {
		return schema.AuthRecord{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return row.record(), nil
}

func (s *sqliteStore) Delete(ctx context.Context, signature string) error {
	err := s.db.WithContext(ctx).Where("signature = ?", signature).Delete(&authRow{}).Error
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (s *sqliteStore) List(ctx context.Context) ([]string, error) {
	var rows []authRow
	if err := s.db.WithContext(ctx).Select("signature").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	sigs := make([]string, 0, len(rows))
	for _, r := range rows {
		sigs = append(sigs, r.Signature)
	}
	return sigs, nil
}

func (s *sqliteStore) Stats(ctx context.Context) (map[string]any, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&authRow{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return map[string]any{
		"type":  "sqlite",
		"total": total,
	}, nil
}

func (s *sqliteStore) Close(context.Context) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
