// SPDX-License-Identifier: MPL-2.0

// Package config handles installer configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/reconprov/config.cue (defaulting to
// ~/.config/reconprov/config.cue), then /etc/reconprov/config.cue, then a config.cue
// in the current directory. Every key is optional; defaults reproduce the standard
// deployment layout (service account "botuser", /opt/telegram-recon-bot,
// /etc/telegram-recon-bot.env, /etc/systemd/system/telegram-recon-bot.service).
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to
// ensure type safety and provide clear error messages for invalid configurations.
package config
