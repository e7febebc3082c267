package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/assessment"
	"github.com/abhisek/skillproof/internal/auth"
	"github.com/abhisek/skillproof/internal/llm"
	"github.com/abhisek/skillproof/internal/logger"
	"github.com/abhisek/skillproof/internal/resume"
	"github.com/abhisek/skillproof/internal/server"
	"github.com/abhisek/skillproof/internal/storage"
	"github.com/abhisek/skillproof/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the skillproof HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (overrides config)")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve(cmd *cobra.Command) error {
	cfg, err := getConfig()
	if err != nil {
		return err
	}

	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	st, err := store.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One long-lived provider handle, shared by the resume parser and the
	// question generator.
	provider, err := llm.NewProvider(ctx, cfg.LLM, st.LLMSink(), log)
	if err != nil {
		return err
	}

	files, err := storage.NewFileStore(cfg.Storage.UploadDir)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Users:   st.Users(),
		Resumes: st.Resumes(),
		Results: st.Results(),
		Tokens:  auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Files:   files,
		Parser:  resume.NewParser(provider, cfg.LLM.MaxTokens, log),
		Issuer: assessment.NewIssuer(
			st.Resumes(), st.Tests(), st.Results(),
			assessment.NewLLMGenerator(provider, cfg.LLM.MaxTokens),
			log,
		),
		Grader: assessment.NewGrader(st.Tests(), st.Results(), log),
		Log:    log,
	}

	log.Info("starting skillproof",
		zap.String("db_driver", cfg.DB.Driver),
		zap.String("llm_provider", cfg.LLM.Provider),
	)

	return server.New(deps).Run(ctx, cfg.Server.Addr)
}
