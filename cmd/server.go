/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nikita2423/approval-bff/internal/api"
	"github.com/nikita2423/approval-bff/internal/config"
	"github.com/nikita2423/approval-bff/internal/container"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the BFF server",
	Long: `Start the Approval BFF server.
The server will listen on the configured host and port, and expose the
draft, case, similarity and decision endpoints consumed by the review UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. 加载配置
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if cmd.Flags().Changed("host") {
			cfg.Server.Host, _ = cmd.Flags().GetString("host")
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}

		// 2. 初始化日志
		logger, err := api.NewLoggerFromConfig(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		// 3. 配置热更新,仅调整日志级别
		if configPath != "" {
			watcher := config.NewConfigWatcher(cfg, configPath)
			watcher.OnConfigChange(func(newCfg *config.Config) {
				level, err := logrus.ParseLevel(newCfg.Log.Level)
				if err != nil {
					logger.WithError(err).Warn("reloaded config has an invalid log level")
					return
				}
				logger.SetLevel(level)
				logger.WithField("level", newCfg.Log.Level).Info("log level reloaded")
			})
			if err := watcher.Start(); err != nil {
				logger.WithError(err).Warn("config hot reload disabled")
			} else {
				defer watcher.Stop()
			}
		}

		// 4. 初始化容器
		ctr, err := container.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize container: %w", err)
		}
		defer ctr.Close()

		// 5. 启动 WebSocket Hub
		go ctr.Hub().Run()

		// 6. 初始化控制器
		authController := api.NewAuthController(
			ctr.AuthClient(), ctr.TokenParser(), ctr.SessionStore(),
			ctr.CaseStore(), ctr.DraftStore(), ctr.ReviewState(),
			cfg.IsProduction(),
		)
		caseController := api.NewCaseController(ctr.CaseStore())
		draftController := api.NewDraftController(ctr.DraftService(), ctr.DraftStore())
		matchController := api.NewMatchController(ctr.MatchService(), ctr.ReviewState())
		decisionController := api.NewDecisionController(
			ctr.JustificationService(), ctr.DecisionService(), ctr.AuditService(), ctr.ReviewState(),
		)
		extractController := api.NewExtractController(ctr.ExtractClient(), ctr.DraftService(), logger)

		// 7. 设置路由
		router := api.SetupRoutes(&api.RouterDeps{
			Config:      cfg,
			Logger:      logger,
			DB:          ctr.DB(),
			TokenParser: ctr.TokenParser(),
			Hub:         ctr.Hub(),
			Auth:        authController,
			Cases:       caseController,
			Drafts:      draftController,
			Matches:     matchController,
			Decisions:   decisionController,
			Extract:     extractController,
		})

		// 8. 启动服务器
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		srv := &http.Server{
			Addr:    addr,
			Handler: router,
		}

		go func() {
			logger.Infof("Server starting on %s", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatalf("Failed to start server: %v", err)
			}
		}()

		// 等待中断信号
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		logger.Info("Shutting down server...")

		// 优雅关闭
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Fatalf("Server forced to shutdown: %v", err)
		}

		logger.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 服务器配置标志
	serverCmd.Flags().String("config", "", "Config file path (default: config.yaml)")
	serverCmd.Flags().String("host", "0.0.0.0", "Server host")
	serverCmd.Flags().Int("port", 8080, "Server port")
}
