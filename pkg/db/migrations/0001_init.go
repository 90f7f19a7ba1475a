package migrations

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func init() {
	goose.AddMigrationContext(upInit, downInit)
}

// Session is a gateway session bound to a set of upstream tokens. The
// refresh token never leaves the server.
type Session struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID       string     `gorm:"type:text;not null;index"`
	UserType     string     `gorm:"type:text;not null"`
	AccessToken  string     `gorm:"type:text;not null"`
	RefreshToken string     `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	ExpiresAt    time.Time  `gorm:"type:timestamptz;not null"`
	LastSeenAt   *time.Time `gorm:"type:timestamptz"`
}

// HireEvent records every mutation pushed upstream on behalf of a session,
// keeping an audit trail the upstream API does not expose.
type HireEvent struct {
	ID            int64             `gorm:"type:bigserial;primaryKey"`
	SessionID     *uuid.UUID        `gorm:"type:uuid;index"`
	JobID         string            `gorm:"type:text;not null;index"`
	CandidateID   string            `gorm:"type:text;not null"`
	ApplicationID string            `gorm:"type:text"`
	Action        string            `gorm:"type:text;not null"`
	Payload       datatypes.JSONMap `gorm:"type:jsonb"`
	At            time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
	Session       Session           `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// ReportExport tracks generated report objects uploaded to object storage.
type ReportExport struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Kind      string            `gorm:"type:text;not null"`
	ObjectKey string            `gorm:"type:text;not null"`
	SHA256    string            `gorm:"type:text;not null"`
	Meta      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time         `gorm:"type:timestamptz;not null;default:now();autoCreateTime"`
}

func upInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	if err := gormDB.WithContext(ctx).AutoMigrate(
		&Session{},
		&HireEvent{},
		&ReportExport{},
	); err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Migrator().CreateConstraint(&HireEvent{}, "Session")
}

func downInit(ctx context.Context, tx *sql.Tx) error {
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: tx, PreferSimpleProtocol: true}), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: false},
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return gormDB.WithContext(ctx).Migrator().DropTable(
		&ReportExport{},
		&HireEvent{},
		&Session{},
	)
}
