package main

import (
	"context"
	"errors"

	"eyecare/internal/app"
	"eyecare/internal/core/scheduler"
	"eyecare/internal/ui/tray"
	"eyecare/resources"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

var errTrayUnsupported = errors.New("system tray unsupported on this platform")

func runTray(ctx context.Context, opts *rootOptions) error {
	env, err := bootstrap(opts)
	if err != nil {
		return err
	}

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.SetIcon(resources.TrayIcon(false))
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		env.logger.Error(env.catalog.T("critical_error"), "err", errTrayUnsupported)
		return errTrayUnsupported
	}

	sched := scheduler.New(env.backend, scheduler.Options{
		Logger:  env.logger,
		Catalog: env.catalog,
	})
	controller := app.New(env.config, sched, app.Options{
		Logger:    env.logger,
		Catalog:   env.catalog,
		Backend:   env.backend,
		Persister: env.store,
		Watcher:   env.store,
		RunOnUI:   fyne.Do,
		RunTray:   fyneApp.Run,
	})

	env.logger.Info(env.catalog.T("init_tray"))
	manager := tray.New(desktopApp, tray.Callbacks{
		OnTogglePause:    controller.TogglePause,
		OnCheckNow:       controller.CheckNow,
		OnSelectInterval: controller.SelectInterval,
		OnQuit:           controller.Quit,
		IsSelected:       controller.IsIntervalSelected,
	}, tray.Options{
		Catalog: env.catalog,
		Icon:    resources.TrayIcon,
		Quit:    fyneApp.Quit,
	})
	manager.Install()
	controller.SetTray(manager)

	return controller.Run(ctx)
}
