package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/samas/samas"
)

const fyneAppID = "yashubustudio.samas"

// Run loads the configuration and dataset, then starts the desktop UI. It returns
// once the window is closed.
func Run(configPath string) error {
	a := fyneapp.NewWithID(fyneAppID)

	fileCfg, err := samas.LoadConfigFile(configPath)
	if err != nil {
		showFatalError(a, fmt.Errorf("कॉन्फ़िगरेशन लोड नहीं हो सका: %w", err))
		return err
	}
	cfg, err := samas.LoadConfig(configPath)
	if err != nil {
		showFatalError(a, fmt.Errorf("कॉन्फ़िगरेशन लोड नहीं हो सका: %w", err))
		return err
	}

	logBind := binding.NewString()
	pane := newLogPane(logBind, 300)
	logger := log.New(io.MultiWriter(os.Stdout, pane), "", log.LstdFlags)

	svc, err := samas.Open(context.Background(), cfg, logger)
	if err != nil {
		logger.Printf("[ERROR] %v", err)
		showFatalError(a, fmt.Errorf("डेटासेट लोड नहीं हो सका: %w", err))
		return err
	}

	u := buildUI(a, svc, logBind)
	u.configPath = configPath
	u.fileCfg = fileCfg
	u.logger = logger
	u.async = true
	u.w.ShowAndRun()
	return u.service().Close()
}

func showFatalError(a fyne.App, err error) {
	w := a.NewWindow(windowTitle)
	w.SetContent(widget.NewLabel(err.Error()))
	w.Resize(fyne.NewSize(640, 200))
	dialog.ShowError(err, w)
	w.ShowAndRun()
}
