package logic

import (
	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// ConfigLogic 平台配置与资金归集
type ConfigLogic struct {
	db *gorm.DB
}

// NewConfigLogic 创建平台配置业务逻辑
func NewConfigLogic(db *gorm.DB) *ConfigLogic {
	return &ConfigLogic{db: db}
}

// SetConfigParams 配置更新参数，nil 字段保持原值
type SetConfigParams struct {
	Owner           *string
	Treasury        *string
	Denom           *string
	Decimals        *uint32
	VestingContract *string
}

// SetConfig 更新平台配置，仅管理员。传入的地址无效时保持原值
func (l *ConfigLogic) SetConfig(caller string, params SetConfigParams) error {
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}

		if params.Owner != nil && validAddress(*params.Owner) {
			cfg.Owner = *params.Owner
		}
		if params.Treasury != nil && validAddress(*params.Treasury) {
			cfg.Treasury = *params.Treasury
		}
		if params.Denom != nil {
			cfg.Denom = *params.Denom
		}
		if params.Decimals != nil {
			cfg.Decimals = *params.Decimals
		}
		if params.VestingContract != nil && (*params.VestingContract == "" || validAddress(*params.VestingContract)) {
			cfg.VestingContract = *params.VestingContract
		}
		return tx.Save(cfg).Error
	})
}

// GetConfig 获取平台配置
func (l *ConfigLogic) GetConfig() (*model.PlatformConfigModel, error) {
	return loadPlatformConfig(l.db)
}

// TransferAllFunds 归集服务全部余额到指定地址，仅管理员。
// 实际划转由派发任务在提交后执行
func (l *ConfigLogic) TransferAllFunds(caller, wallet string) error {
	if !validAddress(wallet) {
		return ErrInvalidAddress
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		cfg, err := loadPlatformConfig(tx)
		if err != nil {
			return err
		}
		if caller != cfg.Owner {
			return ErrUnauthorized
		}
		return enqueueEffects(tx, []effect.Effect{
			effect.New(effect.KindBankSweep, 0, effect.BankSweep{To: wallet}),
		})
	})
}
