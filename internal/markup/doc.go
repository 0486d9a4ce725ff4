// Package markup renders lesson theory text into display HTML. The default
// engine is a fixed, ordered pipeline of regular-expression rules covering
// fenced code blocks, bold, italic, inline code and line breaks. A goldmark
// backed engine is available for courses authored in full Markdown.
package markup
