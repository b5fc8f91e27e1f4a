package style

import "go-view/css"

// userAgentCSS is the built-in default sheet. It refines the per-tag display
// kinds and carries the usual HTML spacing defaults.
const userAgentCSS = `
html, body { display: block; }
body { margin: 8px; font-size: 16px; }

head, style, title { display: none; }
br, wbr { display: inline; }

div, p, section, article, header, footer, nav, main, aside,
blockquote, pre, figure, figcaption, form, fieldset, address,
ul, ol, dl, dt, dd, hr,
table, thead, tbody, tfoot, tr { display: block; }

span, a, b, i, strong, em, u, s, code, kbd, samp, small, sub, sup,
abbr, cite, q, time, mark, label, var { display: inline; }

td, th { display: inline-block; padding: 2px 6px; }
table { display: table; }
li { display: list-item; }

img, input, select, textarea, button { display: inline-block; }

h1 { display: block; font-size: 32px; font-weight: bold; margin: 21px 0; }
h2 { display: block; font-size: 24px; font-weight: bold; margin: 19px 0; }
h3 { display: block; font-size: 19px; font-weight: bold; margin: 18px 0; }
h4 { display: block; font-size: 16px; font-weight: bold; margin: 21px 0; }
h5 { display: block; font-size: 13px; font-weight: bold; margin: 22px 0; }
h6 { display: block; font-size: 11px; font-weight: bold; margin: 24px 0; }

p { margin: 16px 0; }
blockquote { margin: 16px 40px; }
pre { margin: 16px 0; font-family: monospace; }
code, kbd, samp { font-family: monospace; }

ul, ol { margin: 16px 0; padding-left: 40px; }
ul ul, ol ul, ul ol, ol ol { margin: 0; }

b, strong { font-weight: bold; }
i, em { font-style: italic; }
u { text-decoration: underline; }
s { text-decoration: line-through; }
sub { vertical-align: sub; font-size: 0.83em; }
sup { vertical-align: super; font-size: 0.83em; }

a { color: #1976d2; text-decoration: underline; }

hr { margin: 8px 0; border-width: 1px; border-color: #b4b4be; height: 0; }

th { font-weight: bold; }
`

// UserAgentSheet returns the parsed built-in stylesheet.
func UserAgentSheet() *css.Stylesheet {
	return css.ParseStylesheet(userAgentCSS, css.OriginUserAgent)
}
