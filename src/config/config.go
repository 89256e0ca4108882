package config

import (
	"strings"

	logging "github.com/ProjectsTask/EasySwapBase/logger"
	"github.com/ProjectsTask/EasySwapBase/stores/gdb"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config 应用程序的全局配置结构
type Config struct {
	Api     *Api             `toml:"api" mapstructure:"api" json:"api"`             // HTTP 服务配置
	Monitor *Monitor         `toml:"monitor" mapstructure:"monitor" json:"monitor"` // 监控相关配置
	Log     *logging.LogConf `toml:"log" mapstructure:"log" json:"log"`             // 日志配置
	Kv      *KvConf          `toml:"kv" mapstructure:"kv" json:"kv"`                // KV存储配置 (Redis)
	DB      *gdb.Config      `toml:"db" mapstructure:"db" json:"db"`                // 数据库配置 (MySQL)
	Params  ParamsCfg        `toml:"params" mapstructure:"params" json:"params"`    // 引擎参数种子, 仅首次启动落库时生效
}

// Api HTTP 服务配置
type Api struct {
	Port string `toml:"port" mapstructure:"port" json:"port"` // 监听地址, 如 :9100
}

// Monitor 监控配置
type Monitor struct {
	PprofEnable bool  `toml:"pprof_enable" mapstructure:"pprof_enable" json:"pprof_enable"` // 是否开启 Pprof
	PprofPort   int64 `toml:"pprof_port" mapstructure:"pprof_port" json:"pprof_port"`       // Pprof 监听端口
}

// ParamsCfg 引擎全局参数的初始值
// 参数行已存在时本节被忽略, 之后只能通过运营方特权接口修改
type ParamsCfg struct {
	Denom        string   `toml:"denom" mapstructure:"denom" json:"denom"`                            // 唯一接受的结算币种
	AskExpiryMin int64    `toml:"ask_expiry_min" mapstructure:"ask_expiry_min" json:"ask_expiry_min"` // 挂单最短有效期(秒)
	AskExpiryMax int64    `toml:"ask_expiry_max" mapstructure:"ask_expiry_max" json:"ask_expiry_max"` // 挂单最长有效期(秒)
	BidExpiryMin int64    `toml:"bid_expiry_min" mapstructure:"bid_expiry_min" json:"bid_expiry_min"` // 集合限价单最短有效期(秒)
	BidExpiryMax int64    `toml:"bid_expiry_max" mapstructure:"bid_expiry_max" json:"bid_expiry_max"` // 集合限价单最长有效期(秒)
	MinPrice     string   `toml:"min_price" mapstructure:"min_price" json:"min_price"`                // 全局最低价
	ListingFee   string   `toml:"listing_fee" mapstructure:"listing_fee" json:"listing_fee"`          // 挂单费
	Operators    []string `toml:"operators" mapstructure:"operators" json:"operators"`                // 运营方地址名单
}

// KvConf Key-Value 存储配置
type KvConf struct {
	Redis []*Redis `toml:"redis" json:"redis"`
}

// Redis 连接配置
type Redis struct {
	Host string `toml:"host" json:"host"`
	Type string `toml:"type" json:"type"` // node 或 cluster
	Pass string `toml:"pass" json:"pass"`
}

// UnmarshalConfig 加载并解析指定路径的配置文件
func UnmarshalConfig(configFilePath string) (*Config, error) {
	path, err := homedir.Expand(configFilePath)
	if err != nil {
		return nil, err
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
	viper.SetEnvPrefix("ESM")
	replacer := strings.NewReplacer(".", "_")
	viper.SetEnvKeyReplacer(replacer)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// UnmarshalCmdConfig 解析 cobra 入口预先绑定好的配置文件
func UnmarshalCmdConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return nil, err
	}

	return &c, nil
}
