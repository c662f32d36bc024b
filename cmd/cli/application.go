package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gitscope/internal/dashboard"
	"github.com/temirov/gitscope/internal/discovery"
	"github.com/temirov/gitscope/internal/execshell"
	"github.com/temirov/gitscope/internal/gitrepo"
	"github.com/temirov/gitscope/internal/inspect"
	"github.com/temirov/gitscope/internal/progress"
	"github.com/temirov/gitscope/internal/ui"
	"github.com/temirov/gitscope/internal/utils"
	flagutils "github.com/temirov/gitscope/internal/utils/flags"
	pathutils "github.com/temirov/gitscope/internal/utils/path"
)

const (
	applicationNameConstant                 = "gitscope"
	applicationShortDescriptionConstant     = "Dashboard for the Git repositories beneath a directory"
	applicationLongDescriptionConstant      = "gitscope discovers Git repositories under a directory tree, inspects each with the git command, and renders a progress dashboard."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	scanPathFlagNameConstant                = "path"
	scanPathFlagShorthandConstant           = "p"
	scanPathFlagUsageConstant               = "Directory whose subtree is scanned for Git repositories."
	menuFlagNameConstant                    = "menu"
	menuFlagShorthandConstant               = "m"
	menuFlagUsageConstant                   = "Launch the interactive menu."
	helpPanelFlagNameConstant               = "helpme"
	helpPanelFlagUsageConstant              = "Show the extended help panel and exit."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	scanConfigurationKeyConstant            = "scan"
	scanRootsConfigKeyConstant              = scanConfigurationKeyConstant + ".roots"
	scanReadmeNamesConfigKeyConstant        = scanConfigurationKeyConstant + ".readme_names"
	environmentPrefixConstant               = "GITSCOPE"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	scanStartingMessageConstant             = "repository scan starting"
	logFieldScanRootsConstant               = "scan_roots"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
)

var (
	supportedLogLevelNames = []string{
		string(utils.LogLevelDebug),
		string(utils.LogLevelInfo),
		string(utils.LogLevelWarn),
		string(utils.LogLevelError),
	}
	supportedLogFormatNames = []string{
		string(utils.LogFormatConsole),
		string(utils.LogFormatStructured),
	}
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Scan   ScanConfiguration              `mapstructure:"scan"`
}

// ApplicationCommonConfiguration stores logging configuration shared across the application.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ScanConfiguration stores the persisted repository scan settings.
type ScanConfiguration struct {
	Roots       []string `mapstructure:"roots"`
	ReadmeNames []string `mapstructure:"readme_names"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	scanPathFlagValue      string
	menuFlagValue          bool
	helpPanelFlagValue     bool
	commandContextAccessor utils.CommandContextAccessor
	scanRootSanitizer      *pathutils.ScanRootSanitizer
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		[]string{defaultConfigurationSearchPathConstant},
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		scanRootSanitizer:      pathutils.NewScanRootSanitizer(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), supportedLogLevelNames, logLevelFlagDescriptionConstant),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(string(utils.LogFormatConsole), supportedLogFormatNames, logFormatFlagDescriptionConstant),
	)

	cobraCommand.Flags().StringVarP(&application.scanPathFlagValue, scanPathFlagNameConstant, scanPathFlagShorthandConstant, "", scanPathFlagUsageConstant)
	cobraCommand.Flags().BoolVarP(&application.menuFlagValue, menuFlagNameConstant, menuFlagShorthandConstant, false, menuFlagUsageConstant)
	cobraCommand.Flags().BoolVar(&application.helpPanelFlagValue, helpPanelFlagNameConstant, false, helpPanelFlagUsageConstant)

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command.
func Execute() error {
	return NewApplication().Execute()
}

// RootCommand exposes the Cobra root command for integration tests.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
		scanRootsConfigKeyConstant:       []string{},
		scanReadmeNamesConfigKeyConstant: []string{},
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	if application.helpPanelFlagValue {
		_, writeError := fmt.Fprint(command.OutOrStdout(), ui.HelpPanelText())
		return writeError
	}

	scanService, serviceError := application.buildScanService(command)
	if serviceError != nil {
		return serviceError
	}

	scanOptions := inspect.ScanOptions{Roots: application.resolveScanRoots(command)}

	scanPathProvided := command.Flags().Changed(scanPathFlagNameConstant)
	if scanPathProvided && !application.menuFlagValue {
		application.logger.Debug(scanStartingMessageConstant, zap.Strings(logFieldScanRootsConstant, scanOptions.Roots))
		return scanService.Run(command.Context(), scanOptions)
	}

	interactiveMenu, menuError := ui.NewInteractiveMenu(
		command.InOrStdin(),
		command.OutOrStdout(),
		func(executionContext context.Context) error {
			application.logger.Debug(scanStartingMessageConstant, zap.Strings(logFieldScanRootsConstant, scanOptions.Roots))
			return scanService.Run(executionContext, scanOptions)
		},
	)
	if menuError != nil {
		return menuError
	}

	return interactiveMenu.Run(command.Context())
}

func (application *Application) buildScanService(command *cobra.Command) (*inspect.Service, error) {
	var commandEventObserver execshell.CommandEventObserver
	if application.humanReadableLoggingEnabled() {
		commandEventObserver = ui.NewConsoleCommandEventLogger(application.logger)
	}

	shellExecutor, executorError := execshell.NewShellExecutorWithObserver(application.logger, execshell.NewOSCommandRunner(), commandEventObserver)
	if executorError != nil {
		return nil, executorError
	}

	repositoryManager, managerError := gitrepo.NewRepositoryManager(shellExecutor)
	if managerError != nil {
		return nil, managerError
	}

	return inspect.NewService(
		discovery.NewFilesystemRepositoryDiscoverer(),
		repositoryManager,
		progress.NewEstimator(application.configuration.Scan.ReadmeNames, nil),
		dashboard.NewTableRenderer(),
		nil,
		utils.NewFlushingWriter(command.OutOrStdout()),
	)
}

func (application *Application) resolveScanRoots(command *cobra.Command) []string {
	if command.Flags().Changed(scanPathFlagNameConstant) {
		return application.scanRootSanitizer.Sanitize([]string{application.scanPathFlagValue})
	}
	return application.scanRootSanitizer.Sanitize(application.configuration.Scan.Roots)
}

func (application *Application) flushLogger() error {
	return application.syncLoggerInstance(application.logger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
