package cmd

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "easyswap-market",
	Short: "escrow marketplace and auction engine.",
	Long:  "escrow marketplace and auction engine.",
}

// Execute 命令行入口
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "conf", "./config/config.toml", "conf file path")
}

// initConfig 把 --conf 指定的配置文件绑定给 viper, 支持 ~ 展开
func initConfig() {
	path, err := homedir.Expand(cfgFile)
	if err != nil {
		panic(err)
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("toml")
	viper.AutomaticEnv()
}
