package daemon

// systemdUnitTemplate runs the daemon as a systemd user service.
const systemdUnitTemplate = `[Unit]
Description=unitconv daemon

[Service]
ExecStart=/path/to/unitconv daemon --daemon-socket /path/to/socket --config /path/to/config
Restart=on-failure
ExecReload=/bin/kill -HUP $MAINPID

[Install]
WantedBy=default.target
`

// launchAgentPlistTemplate runs the daemon as a launchd agent of the user.
const launchAgentPlistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>` + launchAgentLabel + `</string>
	<key>ProgramArguments</key>
	<array>
		<string>/path/to/unitconv</string>
		<string>daemon</string>
		<string>--daemon-socket</string>
		<string>/path/to/socket</string>
		<string>--config</string>
		<string>/path/to/config</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>KeepAlive</key>
	<true/>
</dict>
</plist>
`
