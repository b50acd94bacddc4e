package config

const (
	defaultLogDir       = "~/.local/share/snapsort/logs"
	defaultFolderColumn = "Team"
	defaultPhotoColumn  = "Photo"
	defaultMode         = ModeMove
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
)

// Organize modes accepted by options.mode.
const (
	ModeMove = "move"
	ModeCopy = "copy"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Columns: Columns{
			Folder: defaultFolderColumn,
			Photo:  defaultPhotoColumn,
		},
		Options: Options{
			Mode:              defaultMode,
			RecurseSubfolders: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
