package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/aydinemre/tubesum/internal/core/config"
	"github.com/aydinemre/tubesum/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort    int
	serveDataDir string
	serveDaemon  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and HTTP API",
	Long: `Start an HTTP server with the summarizer web form and a JSON API.

Examples:
  tubesum serve              # Start server on port 8080
  tubesum serve -p 9000      # Start server on port 9000
  tubesum serve -d           # Start server as background daemon

API Endpoints:
  GET  /api/health           # Health check
  GET  /api/providers        # List providers and availability
  POST /api/summarize        # Fetch transcript and summarize a video
  POST /api/chat             # Ask a question about the current video
  GET  /api/history          # Conversation history
  GET  /audio                # Narrated summary audio`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			switch args[0] {
			case "stop":
				if err := stopDaemon(); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			case "status":
				if err := daemonStatus(); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					os.Exit(1)
				}
				return
			}
		}

		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP listen port (default: 8080)")
	serveCmd.Flags().StringVarP(&serveDataDir, "data-dir", "o", "", "directory for the index and audio files")
	serveCmd.Flags().BoolVarP(&serveDaemon, "daemon", "d", false, "run as background daemon")

	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	cfg := config.LoadOrDefault()

	// flag > config > default
	port := servePort
	if port == 0 {
		if cfg.Server.Port > 0 {
			port = cfg.Server.Port
		} else {
			port = 8080
		}
	}

	dataDir := serveDataDir
	if dataDir == "" {
		if cfg.DataDir != "" {
			dataDir = cfg.DataDir
		} else {
			dataDir = config.DefaultDataDir()
		}
	}
	if len(dataDir) >= 2 && dataDir[:2] == "~/" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if serveDaemon {
		return startDaemon(port, dataDir)
	}

	return runServer(port, dataDir, cfg)
}

func runServer(port int, dataDir string, cfg *config.Config) error {
	srv := server.NewServer(port, dataDir, cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Stop(ctx)
	}()

	return srv.Start()
}

func startDaemon(port int, dataDir string) error {
	if pid := getDaemonPID(); pid > 0 {
		if processExists(pid) {
			return fmt.Errorf("daemon already running (PID %d)", pid)
		}
		os.Remove(getPIDFilePath())
	}

	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	args := []string{"serve", "-p", strconv.Itoa(port), "-o", dataDir}

	logFile, err := os.OpenFile(getLogFilePath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	cmd := exec.Command(executable, args...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Stdin = nil
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	if err := cmd.Start(); err != nil {
		logFile.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	if err := savePID(cmd.Process.Pid); err != nil {
		cmd.Process.Kill()
		logFile.Close()
		return fmt.Errorf("failed to save PID: %w", err)
	}

	fmt.Printf("tubesum server started as daemon (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  Port: %d\n", port)
	fmt.Printf("  Data: %s\n", dataDir)
	fmt.Printf("  Log: %s\n", getLogFilePath())
	fmt.Printf("\nUse 'tubesum serve stop' to stop the daemon\n")

	return nil
}

func stopDaemon() error {
	pid := getDaemonPID()
	if pid <= 0 {
		return fmt.Errorf("daemon is not running")
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		os.Remove(getPIDFilePath())
		return fmt.Errorf("daemon process not found")
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		os.Remove(getPIDFilePath())
		return fmt.Errorf("failed to stop daemon: %w", err)
	}

	for i := 0; i < 30; i++ {
		if !processExists(pid) {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	os.Remove(getPIDFilePath())
	fmt.Println("Daemon stopped")
	return nil
}

func daemonStatus() error {
	pid := getDaemonPID()
	if pid <= 0 {
		fmt.Println("Daemon is not running")
		return nil
	}

	if !processExists(pid) {
		os.Remove(getPIDFilePath())
		fmt.Println("Daemon is not running (stale PID file removed)")
		return nil
	}

	fmt.Printf("Daemon is running (PID %d)\n", pid)
	fmt.Printf("Log file: %s\n", getLogFilePath())
	return nil
}

func getPIDFilePath() string {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "/tmp/tubesum-serve.pid"
	}
	return filepath.Join(configDir, "serve.pid")
}

func getLogFilePath() string {
	configDir, err := config.ConfigDir()
	if err != nil {
		return "/tmp/tubesum-serve.log"
	}
	return filepath.Join(configDir, "serve.log")
}

func savePID(pid int) error {
	pidFile := getPIDFilePath()
	dir := filepath.Dir(pidFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(pidFile, []byte(strconv.Itoa(pid)), 0644)
}

func getDaemonPID() int {
	data, err := os.ReadFile(getPIDFilePath())
	if err != nil {
		return 0
	}
	pid, err := strconv.Atoi(string(data))
	if err != nil {
		return 0
	}
	return pid
}

func processExists(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// On Unix, FindProcess always succeeds, so we need to send signal 0 to check
	err = process.Signal(syscall.Signal(0))
	return err == nil
}
