package repository

import (
	"database/sql"
	"log"
	"os"

	"pokdeng/entities"

	_ "github.com/go-sql-driver/mysql"
)

var sqlDB *sql.DB

const createSettleTable = `CREATE TABLE IF NOT EXISTS settle_history (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	room_code VARCHAR(16) NOT NULL,
	round INT NOT NULL,
	player_id VARCHAR(64) NOT NULL,
	player_name VARCHAR(64) NOT NULL,
	outcome VARCHAR(8) NOT NULL,
	payout INT NOT NULL,
	player_pts INT NOT NULL,
	dealer_pts INT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	INDEX idx_room (room_code, round)
)`

// InitMySQL 初始化结算流水存档。没配置 MYSQL_DSN 就跳过，
// 游戏本身不依赖 MySQL，只用来留历史记录。
func InitMySQL() {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		log.Println("未配置 MYSQL_DSN，结算流水存档关闭")
		return
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Printf("❌ MySQL 连接配置错误: %v\n", err)
		return
	}
	if err := db.Ping(); err != nil {
		log.Printf("❌ MySQL 连接失败，结算流水存档关闭: %v\n", err)
		return
	}
	if _, err := db.Exec(createSettleTable); err != nil {
		log.Printf("❌ 创建结算流水表失败: %v\n", err)
		return
	}
	sqlDB = db
	log.Println("✅ MySQL 连接成功，结算流水存档开启")
}

// ArchiveResults 把一轮的结算结果写入 MySQL，尽力而为，失败只记日志
func ArchiveResults(code string, round int, results []entities.SettleResult) {
	if sqlDB == nil || len(results) == 0 {
		return
	}
	stmt := `INSERT INTO settle_history
		(room_code, round, player_id, player_name, outcome, payout, player_pts, dealer_pts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, r := range results {
		if _, err := sqlDB.Exec(stmt, code, round,
			r.PlayerID, r.PlayerName, r.Outcome, r.Payout, r.PlayerPts, r.DealerPts); err != nil {
			log.Printf("❌ 结算流水写入失败 room=%s player=%s: %v\n", code, r.PlayerID, err)
		}
	}
}
