package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/viper"

	"trade_gateway/internal/modules/config"
	"trade_gateway/internal/modules/credentials"
)

// keycheck печатает, какие поля ключей заполнены по каждой бирже.
// Только флаги наличия — значения секретов не выводятся.
func main() {
	configName := "values_local"
	if v := os.Getenv("CONFIG_FILE"); v != "" {
		configName = v
	}
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")
	if err := viper.ReadInConfig(); err == nil {
		fmt.Printf("config: %s\n\n", viper.ConfigFileUsed())
	} else {
		fmt.Println("config: файл не найден, только defaults + окружение")
		fmt.Println()
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	described := credentials.NewStore(cfg).Describe()

	exchanges := make([]string, 0, len(described))
	for name := range described {
		exchanges = append(exchanges, name)
	}
	sort.Strings(exchanges)

	for _, name := range exchanges {
		fmt.Println(name + ":")
		fields := described[name]
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			mark := "—"
			if fields[k] {
				mark = "✓"
			}
			fmt.Printf("  %-14s %s\n", k, mark)
		}
		fmt.Println()
	}
}
