package logic

import (
	"errors"
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/seedfund/sfs/internal/effect"
	"github.com/seedfund/sfs/internal/model"
	"gorm.io/gorm"
)

// UstScale 基础计价单位精度，目标金额按此缩放计算白名单缺口
const UstScale uint64 = 1_000_000

// pow10 10的n次幂，精度输入来自配置，上限防溢出
func pow10(n uint32) uint64 {
	v := uint64(1)
	for i := uint32(0); i < n && i < 19; i++ {
		v *= 10
	}
	return v
}

// mulScale 按比例缩放金额，越过 uint64 上限返回溢出错误而不回绕
func mulScale(projectId int64, value, scale uint64) (uint64, error) {
	if scale != 0 && value > math.MaxUint64/scale {
		return 0, &ArithmeticOverflowError{ProjectId: projectId, Value: value, Scale: scale}
	}
	return value * scale, nil
}

// ensureStatus 状态门禁，常规流转只在指定状态下放行
func ensureStatus(p *model.ProjectModel, want model.ProjectStatus) error {
	if p.Status != want {
		return &InvalidStatusError{Current: p.Status}
	}
	return nil
}

// loadProject 按ID加载项目记录
func loadProject(tx *gorm.DB, id int64) (*model.ProjectModel, error) {
	var p model.ProjectModel
	if err := tx.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return &p, nil
}

// loadPlatformConfig 加载平台配置单行记录
func loadPlatformConfig(tx *gorm.DB) (*model.PlatformConfigModel, error) {
	var cfg model.PlatformConfigModel
	if err := tx.First(&cfg).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadCommunity 加载社区成员地址列表，按登记顺序
func loadCommunity(tx *gorm.DB) ([]string, error) {
	var members []model.CommunityMemberModel
	if err := tx.Order("id ASC").Find(&members).Error; err != nil {
		return nil, err
	}
	wallets := make([]string, 0, len(members))
	for _, m := range members {
		wallets = append(wallets, m.Wallet)
	}
	return wallets, nil
}

// enqueueEffects 把对外请求与业务变更写进同一事务
func enqueueEffects(tx *gorm.DB, effects []effect.Effect) error {
	for _, e := range effects {
		payload, err := e.MarshalPayload()
		if err != nil {
			return err
		}
		row := model.OutboxModel{
			ProjectId: e.ProjectId,
			Kind:      string(e.Kind),
			Payload:   payload,
			Status:    model.OutboxStatusPending,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}
	return nil
}

// validAddress 校验钱包地址
func validAddress(addr string) bool {
	return common.IsHexAddress(addr)
}
