package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	goethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/seedfund/sfs/internal/config"
)

// Client 链侧客户端：查询代币精度、提交资金划转与归属合约调用
type Client struct {
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	chainId    *big.Int
	erc20ABI   abi.ABI
	vestingABI abi.ABI
}

// ERC20 元数据与划转接口（最小子集）
const erc20ABIJson = `[
	{"constant": true, "inputs": [], "name": "decimals", "outputs": [{"name": "", "type": "uint8"}], "type": "function"},
	{
		"constant": false,
		"inputs": [
			{"name": "from", "type": "address"},
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"name": "transferFrom",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	}
]`

// 归属合约接口（简化版）
const vestingABIJson = `[
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "admin", "type": "address"},
			{"name": "token", "type": "address"},
			{"name": "stages", "type": "uint256[3][]"},
			{"name": "startTime", "type": "uint256"}
		],
		"name": "addProject",
		"outputs": [],
		"type": "function"
	},
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "wallet", "type": "address"},
			{"name": "stage", "type": "uint256"},
			{"name": "amount", "type": "uint256"}
		],
		"name": "addBacker",
		"outputs": [],
		"type": "function"
	},
	{
		"inputs": [
			{"name": "projectId", "type": "uint256"},
			{"name": "startTime", "type": "uint256"}
		],
		"name": "startRelease",
		"outputs": [],
		"type": "function"
	}
]`

func Init(cfg config.ChainConfig) (*Client, error) {
	// 连接链上节点
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}

	// 解析派发账户私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	erc20ABI, err := abi.JSON(strings.NewReader(erc20ABIJson))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 ABI: %w", err)
	}
	vestingABI, err := abi.JSON(strings.NewReader(vestingABIJson))
	if err != nil {
		return nil, fmt.Errorf("failed to parse vesting ABI: %w", err)
	}

	return &Client{
		client:     client,
		privateKey: privateKey,
		chainId:    big.NewInt(cfg.ChainId),
		erc20ABI:   erc20ABI,
		vestingABI: vestingABI,
	}, nil
}

// GetAccountAddress 获取派发账户地址
func (c *Client) GetAccountAddress() common.Address {
	return crypto.PubkeyToAddress(c.privateKey.PublicKey)
}

// TokenDecimals 查询代币精度
func (c *Client) TokenDecimals(addr string) (uint8, error) {
	data, err := c.erc20ABI.Pack("decimals")
	if err != nil {
		return 0, err
	}
	to := common.HexToAddress(addr)
	result, err := c.client.CallContract(context.Background(), ethereumCallMsg(to, data), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to query token decimals: %w", err)
	}
	var decimals uint8
	if err := c.erc20ABI.UnpackIntoInterface(&decimals, "decimals", result); err != nil {
		return 0, err
	}
	return decimals, nil
}

// Balance 查询派发账户余额
func (c *Client) Balance(ctx context.Context) (*big.Int, error) {
	return c.client.BalanceAt(ctx, c.GetAccountAddress(), nil)
}

// SendNative 原生资产转账，返回交易哈希
func (c *Client) SendNative(ctx context.Context, to string, amount *big.Int) (string, error) {
	return c.submit(ctx, common.HexToAddress(to), amount, nil)
}

// TokenTransferFrom 代币 transferFrom 划转
func (c *Client) TokenTransferFrom(ctx context.Context, token, owner, recipient string, amount *big.Int) (string, error) {
	data, err := c.erc20ABI.Pack("transferFrom",
		common.HexToAddress(owner), common.HexToAddress(recipient), amount)
	if err != nil {
		return "", err
	}
	return c.submit(ctx, common.HexToAddress(token), big.NewInt(0), data)
}

// VestingAddProject 向归属合约登记项目归属计划
func (c *Client) VestingAddProject(ctx context.Context, vestingAddr string, projectId int64, admin, token string, stages [][3]uint64, startTime uint64) (string, error) {
	packed := make([][3]*big.Int, 0, len(stages))
	for _, s := range stages {
		packed = append(packed, [3]*big.Int{
			new(big.Int).SetUint64(s[0]),
			new(big.Int).SetUint64(s[1]),
			new(big.Int).SetUint64(s[2]),
		})
	}
	data, err := c.vestingABI.Pack("addProject",
		big.NewInt(projectId), common.HexToAddress(admin), common.HexToAddress(token),
		packed, new(big.Int).SetUint64(startTime))
	if err != nil {
		return "", err
	}
	return c.submit(ctx, common.HexToAddress(vestingAddr), big.NewInt(0), data)
}

// VestingAddBacker 向归属合约登记受益人
func (c *Client) VestingAddBacker(ctx context.Context, vestingAddr string, projectId int64, wallet string, stage int64, amount uint64) (string, error) {
	data, err := c.vestingABI.Pack("addBacker",
		big.NewInt(projectId), common.HexToAddress(wallet), big.NewInt(stage), new(big.Int).SetUint64(amount))
	if err != nil {
		return "", err
	}
	return c.submit(ctx, common.HexToAddress(vestingAddr), big.NewInt(0), data)
}

// VestingStartRelease 启动归属释放时钟
func (c *Client) VestingStartRelease(ctx context.Context, vestingAddr string, projectId, startTime int64) (string, error) {
	data, err := c.vestingABI.Pack("startRelease", big.NewInt(projectId), big.NewInt(startTime))
	if err != nil {
		return "", err
	}
	return c.submit(ctx, common.HexToAddress(vestingAddr), big.NewInt(0), data)
}

func ethereumCallMsg(to common.Address, data []byte) goethereum.CallMsg {
	return goethereum.CallMsg{To: &to, Data: data}
}

// submit 构造、签名并提交一笔交易
func (c *Client) submit(ctx context.Context, to common.Address, value *big.Int, data []byte) (string, error) {
	from := c.GetAccountAddress()

	nonce, err := c.client.PendingNonceAt(ctx, from)
	if err != nil {
		return "", fmt.Errorf("failed to fetch nonce: %w", err)
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch gas price: %w", err)
	}

	gasLimit := uint64(21000)
	if len(data) > 0 {
		gasLimit = 200000
	}

	tx := types.NewTransaction(nonce, to, value, gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(c.chainId), c.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}
	return signed.Hash().Hex(), nil
}
