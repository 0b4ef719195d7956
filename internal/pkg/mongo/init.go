package mongo

import (
	"Trellis/internal/api/config"
	"Trellis/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Databases 三个业务库的引用：comprehensive 存聚合文档，
// statistics 存统计文档，journal 存流水
type Databases struct {
	Comprehensive *mongo.Database
	Statistics    *mongo.Database
	Journal       *mongo.Database
}

// InitMongo 建立连接并返回各 Database 引用
func InitMongo(cfg config.MongoConfig) (*Databases, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// 建立连接
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor()),
	)
	if err != nil {
		return nil, err
	}

	// 检查连通性
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	dbs := &Databases{
		Comprehensive: client.Database(cfg.ComprehensiveDB),
		Statistics:    client.Database(cfg.StatisticsDB),
		Journal:       client.Database(cfg.JournalDB),
	}

	log.Info("MongoDB initialized successfully", "comprehensive", cfg.ComprehensiveDB, "statistics", cfg.StatisticsDB)
	return dbs, nil
}
