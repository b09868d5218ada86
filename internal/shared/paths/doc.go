// Package paths provides standardized filesystem paths and configuration keys.
//
// # Layout
//
//	/etc/hildon/theme/backgrounds/theme_bg.desktop          (current theme)
//	/usr/share/themes/default/backgrounds/theme_bg.desktop  (default theme)
//	$XDG_CONFIG_HOME/hildon-desktop/views.toml              (views configuration)
//	/tmp/osso-appl-states/hildon-desktop/hildon-home.stamp  (running stamp)
//
// # Keys
//
//	/apps/osso/hildon-desktop/views/active       ordered list of active views
//	/apps/osso/hildon-desktop/views/<n>/bg-image  background override for view n
//
// # Usage
//
//	key := paths.BackgroundKey(2) // /apps/osso/hildon-desktop/views/2/bg-image
//	if paths.ValidView(id) {
//	    active[id-1] = true
//	}
package paths
