package config

import (
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// FormRules are operator overrides for the invoice form schema. Zero
// values fall back to the built-in rule set.
type FormRules struct {
	CustomerMessage  string `mapstructure:"customerMessage"`
	AmountMessage    string `mapstructure:"amountMessage"`
	StatusMessage    string `mapstructure:"statusMessage"`
	MaxAmountCents   int64  `mapstructure:"maxAmountCents"`
	MaxAmountMessage string `mapstructure:"maxAmountMessage"`
}

// FormRulesHolder serves the current form rules and hot-reloads them
// when the config file changes.
type FormRulesHolder struct {
	current atomic.Value // holds FormRules
}

// NewFormRulesHolder reads forms.yml if present. Missing files are not
// an error; the holder then serves zero-value rules.
func NewFormRulesHolder(log *zap.Logger) (*FormRulesHolder, error) {
	v := viper.New()

	v.SetConfigName("forms")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billfold")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLFOLD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	holder := &FormRulesHolder{}
	holder.current.Store(FormRules{})

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		return holder, nil
	}

	rules, err := unmarshalFormRules(v)
	if err != nil {
		return nil, err
	}
	holder.current.Store(rules)

	v.OnConfigChange(func(e fsnotify.Event) {
		reloaded, err := unmarshalFormRules(v)
		if err != nil {
			log.Warn("form rules reload failed", zap.String("file", e.Name), zap.Error(err))
			return
		}
		holder.current.Store(reloaded)
		log.Info("form rules reloaded", zap.String("file", e.Name))
	})
	v.WatchConfig()

	return holder, nil
}

// Current returns the rules last loaded.
func (h *FormRulesHolder) Current() FormRules {
	if h == nil {
		return FormRules{}
	}
	rules, _ := h.current.Load().(FormRules)
	return rules
}

func unmarshalFormRules(v *viper.Viper) (FormRules, error) {
	var rules FormRules
	if err := v.UnmarshalKey("forms.invoice", &rules); err != nil {
		return FormRules{}, err
	}
	return rules, nil
}
