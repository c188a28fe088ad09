package logic

import (
	"fmt"
	"testing"

	"github.com/seedfund/sfs/internal/database"
	"github.com/seedfund/sfs/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 测试用固定地址
const (
	addrOwner    = "0x1000000000000000000000000000000000000001"
	addrTreasury = "0x1000000000000000000000000000000000000002"
	addrCreator  = "0x1000000000000000000000000000000000000003"
	addrBackerA  = "0x2000000000000000000000000000000000000001"
	addrBackerB  = "0x2000000000000000000000000000000000000002"
	addrBackerC  = "0x2000000000000000000000000000000000000003"
	addrMemberA  = "0x3000000000000000000000000000000000000001"
	addrMemberB  = "0x3000000000000000000000000000000000000002"
	addrVesting  = "0x4000000000000000000000000000000000000001"
	addrToken    = "0x4000000000000000000000000000000000000002"
)

// setupDB 每个测试独享一个内存库，预置平台配置
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := model.PlatformConfigModel{
		Owner:    addrOwner,
		Treasury: addrTreasury,
		Denom:    "uusd",
		Decimals: 6,
	}
	require.NoError(t, db.Create(&cfg).Error)
	return db
}

// setVestingContract 接入归属子系统
func setVestingContract(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Model(&model.PlatformConfigModel{}).
		Where("owner = ?", addrOwner).
		Update("vesting_contract", addrVesting).Error
	require.NoError(t, err)
}

// addCommunity 登记社区成员
func addCommunity(t *testing.T, db *gorm.DB, wallets ...string) {
	t.Helper()
	for _, w := range wallets {
		require.NoError(t, db.Create(&model.CommunityMemberModel{Wallet: w}).Error)
	}
}

// createProject 落库一个指定状态的项目
func createProject(t *testing.T, db *gorm.DB, mutate func(*model.ProjectModel)) *model.ProjectModel {
	t.Helper()
	p := &model.ProjectModel{
		Title:         "测试项目",
		Creator:       addrCreator,
		FundingTarget: 1,
		Status:        model.ProjectStatusFundraising,
		HolderAlloc:   80,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// reload 重新加载项目记录
func reload(t *testing.T, db *gorm.DB, id int64) *model.ProjectModel {
	t.Helper()
	p, err := loadProject(db, id)
	require.NoError(t, err)
	return p
}

// outboxByKind 按类型取派发队列记录，按入队顺序
func outboxByKind(t *testing.T, db *gorm.DB, kind string) []model.OutboxModel {
	t.Helper()
	var rows []model.OutboxModel
	err := db.Where("kind = ?", kind).Order("id ASC").Find(&rows).Error
	require.NoError(t, err)
	return rows
}

// stubTokens 固定精度的代币信息桩
type stubTokens struct {
	decimals uint8
	err      error
}

func (s stubTokens) TokenDecimals(addr string) (uint8, error) {
	return s.decimals, s.err
}
