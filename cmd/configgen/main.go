// configgen writes a starter config: the built-in defaults overlaid with an
// optional .signal_bot.base.yaml from the working directory.
//
//	go run ./cmd/configgen [output]   (default configs/values_local.yaml)
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"signal_bot/internal/modules/config"
)

const (
	baseConfigName    = ".signal_bot.base"
	defaultOutputPath = "configs/values_local.yaml"
)

func generateConfig(engine *viper.Viper, out string) error {
	defaults, err := yaml.Marshal(config.Default())
	if err != nil {
		return errors.Wrap(err, "marshal defaults")
	}
	engine.SetConfigType("yaml")
	if err := engine.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return errors.Wrap(err, "load defaults")
	}

	engine.SetConfigName(baseConfigName)
	engine.AddConfigPath(".")
	if err := engine.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return errors.Wrap(err, "merge base config")
		}
	}

	bs, err := yaml.Marshal(engine.AllSettings())
	if err != nil {
		return errors.Wrap(err, "marshal config to yaml")
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	if err := os.WriteFile(out, bs, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", out)
	}
	return nil
}

func main() {
	out := defaultOutputPath
	if len(os.Args) > 1 {
		out = os.Args[1]
	}
	if err := generateConfig(viper.New(), out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("written", out)
}
