// Package aipage turns AI-generated page artifacts into published,
// server-rendered pages. It reconciles whatever shape the generator chose
// (one self-contained HTML file, separate HTML/CSS/JS files, or a zip
// archive) into a canonical markup/style/script triple and hands that
// triple to a page storage and compilation service.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package aipage
