// Package lua embeds a sandboxed Lua runtime for user status line scripts.
//
// A State wraps gopher-lua with a restricted standard library:
//
//	state, err := lua.NewState(lua.WithExecutionTimeout(time.Second))
//	if err != nil {
//	    return err
//	}
//	defer state.Close()
//
// Go renderers are exposed as zero-argument globals so option expressions can
// reach them:
//
//	state.RegisterRenderer("statusline", line.Render)
//	out, err := state.EvalExpr("%!v:lua.statusline()")
//
// User scripts loaded with DoFile talk to the host through the stormline
// module installed by InstallAPI:
//
//	stormline.exclude_filetype("dashboard")
//	stormline.set_var("g", "zoom_scale_factor", 1.25)
//	stormline.autocmd({"BufWritePost"}, {"*.go"}, function(ev) stormline.redraw() end)
//	stormline.redraw()
package lua
