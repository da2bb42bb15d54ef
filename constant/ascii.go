package constant

// AsciiArtLogo is the application banner shown in the root help.
const AsciiArtLogo = `
     _                    _
 ___(_)_ __ ___  _   _  __| |
/ __| | '_ ` + "`" + ` _ \| | | |/ _` + "`" + ` |
\__ \ | | | | | | |_| | (_| |
|___/_|_| |_| |_|\__,_|\__,_|
`
